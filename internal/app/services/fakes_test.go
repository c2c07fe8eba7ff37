package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/geocoder"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// In-memory store fakes. They implement just enough of the store contracts
// for the service flows under test; list filtering is not simulated.

func listQueryForTests() *query.ListQuery {
	return &query.ListQuery{Filter: bson.M{}, Page: query.DefaultPage, Limit: query.DefaultLimit}
}

type fakeUserStore struct {
	users       map[primitive.ObjectID]*models.User
	resetToken  map[primitive.ObjectID]string
	resetExpire map[primitive.ObjectID]time.Time
	createErr   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       map[primitive.ObjectID]*models.User{},
		resetToken:  map[primitive.ObjectID]string{},
		resetExpire: map[primitive.ObjectID]time.Time{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, apperrors.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context, _ *query.ListQuery) ([]*models.User, int64, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	if email, ok := fields["email"].(string); ok {
		user.Email = email
	}
	if role, ok := fields["role"].(string); ok {
		user.Role = models.Role(role)
	}
	return user, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) SetResetToken(_ context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	f.resetToken[id] = tokenHash
	f.resetExpire[id] = expire
	return nil
}

func (f *fakeUserStore) ClearResetToken(_ context.Context, id primitive.ObjectID) error {
	delete(f.resetToken, id)
	delete(f.resetExpire, id)
	return nil
}

func (f *fakeUserStore) GetByResetToken(_ context.Context, tokenHash string) (*models.User, error) {
	for id, stored := range f.resetToken {
		if stored == tokenHash && f.resetExpire[id].After(time.Now()) {
			return f.users[id], nil
		}
	}
	return nil, apperrors.ErrInvalidResetToken
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Password = passwordHash
	return f.ClearResetToken(context.Background(), id)
}

type fakeBootcampStore struct {
	bootcamps     map[primitive.ObjectID]*models.Bootcamp
	averageCost   map[primitive.ObjectID]int
	averageRating map[primitive.ObjectID]float64
}

func newFakeBootcampStore() *fakeBootcampStore {
	return &fakeBootcampStore{
		bootcamps:     map[primitive.ObjectID]*models.Bootcamp{},
		averageCost:   map[primitive.ObjectID]int{},
		averageRating: map[primitive.ObjectID]float64{},
	}
}

func (f *fakeBootcampStore) Create(_ context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error) {
	for _, existing := range f.bootcamps {
		if existing.Name == bootcamp.Name {
			return nil, apperrors.ErrDuplicateKey
		}
	}
	bootcamp.ID = primitive.NewObjectID()
	bootcamp.CreatedAt = time.Now()
	f.bootcamps[bootcamp.ID] = bootcamp
	return bootcamp, nil
}

func (f *fakeBootcampStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	if bootcamp, ok := f.bootcamps[id]; ok {
		return bootcamp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeBootcampStore) List(_ context.Context, _ *query.ListQuery) ([]*models.Bootcamp, int64, error) {
	out := make([]*models.Bootcamp, 0, len(f.bootcamps))
	for _, bootcamp := range f.bootcamps {
		out = append(out, bootcamp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBootcampStore) FindWithinRadius(_ context.Context, _, _, _ float64) ([]*models.Bootcamp, error) {
	out := make([]*models.Bootcamp, 0, len(f.bootcamps))
	for _, bootcamp := range f.bootcamps {
		out = append(out, bootcamp)
	}
	return out, nil
}

func (f *fakeBootcampStore) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	count := int64(0)
	for _, bootcamp := range f.bootcamps {
		if bootcamp.User == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBootcampStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error) {
	bootcamp, ok := f.bootcamps[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		bootcamp.Name = name
	}
	if slug, ok := fields["slug"].(string); ok {
		bootcamp.Slug = slug
	}
	if description, ok := fields["description"].(string); ok {
		bootcamp.Description = description
	}
	if careers, ok := fields["careers"].([]string); ok {
		bootcamp.Careers = careers
	}
	if location, ok := fields["location"].(*models.Location); ok {
		bootcamp.Location = *location
	}
	return bootcamp, nil
}

func (f *fakeBootcampStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.bootcamps[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.bootcamps, id)
	return nil
}

func (f *fakeBootcampStore) SetAverageCost(_ context.Context, id primitive.ObjectID, averageCost int) error {
	f.averageCost[id] = averageCost
	return nil
}

func (f *fakeBootcampStore) UnsetAverageCost(_ context.Context, id primitive.ObjectID) error {
	delete(f.averageCost, id)
	return nil
}

func (f *fakeBootcampStore) SetAverageRating(_ context.Context, id primitive.ObjectID, averageRating float64) error {
	f.averageRating[id] = averageRating
	return nil
}

func (f *fakeBootcampStore) UnsetAverageRating(_ context.Context, id primitive.ObjectID) error {
	delete(f.averageRating, id)
	return nil
}

func (f *fakeBootcampStore) SetPhoto(_ context.Context, id primitive.ObjectID, filename string) error {
	bootcamp, ok := f.bootcamps[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	bootcamp.Photo = filename
	return nil
}

type fakeCourseStore struct {
	courses map[primitive.ObjectID]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[primitive.ObjectID]*models.Course{}}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) (*models.Course, error) {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now()
	f.courses[course.ID] = course
	return course, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	if course, ok := f.courses[id]; ok {
		return course, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCourseStore) List(_ context.Context, _ *query.ListQuery) ([]*models.Course, int64, error) {
	out := make([]*models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) ListByBootcamp(_ context.Context, bootcampID primitive.ObjectID) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, course := range f.courses {
		if course.Bootcamp == bootcampID {
			out = append(out, course)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) ListByBootcampIDs(_ context.Context, bootcampIDs []primitive.ObjectID) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, id := range bootcampIDs {
		scoped, _ := f.ListByBootcamp(context.Background(), id)
		out = append(out, scoped...)
	}
	return out, nil
}

func (f *fakeCourseStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		course.Title = title
	}
	if tuition, ok := fields["tuition"].(float64); ok {
		course.Tuition = tuition
	}
	return course, nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) DeleteByBootcamp(_ context.Context, bootcampID primitive.ObjectID) (int64, error) {
	deleted := int64(0)
	for id, course := range f.courses {
		if course.Bootcamp == bootcampID {
			delete(f.courses, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeCourseStore) AverageTuition(_ context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	sum, n := 0.0, 0
	for _, course := range f.courses {
		if course.Bootcamp == bootcampID {
			sum += course.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

type fakeReviewStore struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	for _, existing := range f.reviews {
		if existing.Bootcamp == review.Bootcamp && existing.User == review.User {
			return nil, apperrors.ErrDuplicateKey
		}
	}
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	if review, ok := f.reviews[id]; ok {
		return review, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeReviewStore) List(_ context.Context, _ *query.ListQuery) ([]*models.Review, int64, error) {
	out := make([]*models.Review, 0, len(f.reviews))
	for _, review := range f.reviews {
		out = append(out, review)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewStore) ListByBootcamp(_ context.Context, bootcampID primitive.ObjectID) ([]*models.Review, error) {
	out := []*models.Review{}
	for _, review := range f.reviews {
		if review.Bootcamp == bootcampID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		review.Title = title
	}
	if rating, ok := fields["rating"].(int); ok {
		review.Rating = rating
	}
	return review, nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.reviews[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewStore) DeleteByBootcamp(_ context.Context, bootcampID primitive.ObjectID) (int64, error) {
	deleted := int64(0)
	for id, review := range f.reviews {
		if review.Bootcamp == bootcampID {
			delete(f.reviews, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReviewStore) AverageRating(_ context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	sum, n := 0, 0
	for _, review := range f.reviews {
		if review.Bootcamp == bootcampID {
			sum += review.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(n), true, nil
}

type fakeGeocoder struct {
	result *geocoder.Result
	err    error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*geocoder.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) SendPasswordResetEmail(toEmail, _, resetURL string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, resetURL)
	return nil
}
