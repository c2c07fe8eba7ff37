package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/geocoder"
)

func bostonGeocoder() *fakeGeocoder {
	return &fakeGeocoder{result: &geocoder.Result{
		Longitude:        -71.104028,
		Latitude:         42.350846,
		FormattedAddress: "233 Bay State Rd, Boston, MA 02215, US",
		Street:           "233 Bay State Rd",
		City:             "Boston",
		State:            "MA",
		Zipcode:          "02215",
		Country:          "US",
	}}
}

func newBootcampFixture() (BootcampService, *fakeBootcampStore, *fakeCourseStore, *fakeReviewStore) {
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	reviews := newFakeReviewStore()
	svc := NewBootcampService(bootcamps, courses, reviews, bostonGeocoder(), nil)
	return svc, bootcamps, courses, reviews
}

func createRequest() *dto.CreateBootcampRequest {
	return &dto.CreateBootcampRequest{
		Name:        "Devworks Bootcamp",
		Description: "Full stack bootcamp",
		Address:     "233 Bay State Rd Boston MA 02215",
		Careers:     []string{"Web Development", "Business"},
	}
}

func TestBootcampCreateDerivesSlugAndLocation(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()

	bootcamp, err := svc.Create(context.Background(), publisherAccount(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "devworks-bootcamp", bootcamp.Slug)
	assert.Equal(t, "Point", bootcamp.Location.Type)
	assert.Equal(t, []float64{-71.104028, 42.350846}, bootcamp.Location.Coordinates)
	assert.Equal(t, "02215", bootcamp.Location.Zipcode)
	assert.Equal(t, models.DefaultPhoto, bootcamp.Photo)
}

func TestBootcampCreateOnePerPublisher(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisherAccount()

	_, err := svc.Create(context.Background(), owner, createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.Name = "Second Bootcamp"
	_, err = svc.Create(context.Background(), owner, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "already published a bootcamp")
}

func TestBootcampCreateAdminExemptFromLimit(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	admin := adminAccount()

	_, err := svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.Name = "Second Bootcamp"
	_, err = svc.Create(context.Background(), admin, second)
	assert.NoError(t, err)
}

func TestBootcampCreateRejectsUnknownCareer(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()

	req := createRequest()
	req.Careers = []string{"Underwater Basket Weaving"}
	_, err := svc.Create(context.Background(), publisherAccount(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestBootcampCreateFailsWhenGeocodeFails(t *testing.T) {
	bootcamps := newFakeBootcampStore()
	svc := NewBootcampService(bootcamps, newFakeCourseStore(), newFakeReviewStore(),
		&fakeGeocoder{err: geocoder.ErrNoResults}, nil)

	_, err := svc.Create(context.Background(), publisherAccount(), createRequest())
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, bootcamps.bootcamps)
}

func TestBootcampUpdateReslugsOnRename(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisherAccount()

	bootcamp, err := svc.Create(context.Background(), owner, createRequest())
	require.NoError(t, err)

	name := "Devworks Academy"
	updated, err := svc.Update(context.Background(), owner, bootcamp.ID.Hex(), &dto.UpdateBootcampRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "devworks-academy", updated.Slug)
}

func TestBootcampUpdateRejectsNonOwner(t *testing.T) {
	svc, _, _, _ := newBootcampFixture()
	owner := publisherAccount()

	bootcamp, err := svc.Create(context.Background(), owner, createRequest())
	require.NoError(t, err)

	name := "Taken Over"
	_, err = svc.Update(context.Background(), publisherAccount(), bootcamp.ID.Hex(), &dto.UpdateBootcampRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBootcampDeleteCascades(t *testing.T) {
	svc, bootcamps, courses, reviews := newBootcampFixture()
	owner := publisherAccount()
	reviewer := reviewerAccount()

	bootcamp, err := svc.Create(context.Background(), owner, createRequest())
	require.NoError(t, err)

	courseSvc := NewCourseService(courses, bootcamps)
	_, err = courseSvc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "t", Description: "d", Weeks: "1", Tuition: 1000, MinimumSkill: "beginner",
	})
	require.NoError(t, err)

	reviewSvc := NewReviewService(reviews, bootcamps)
	_, err = reviewSvc.Create(context.Background(), reviewer, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "r", Text: "t", Rating: 7,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, bootcamp.ID.Hex()))

	assert.Empty(t, bootcamps.bootcamps)
	assert.Empty(t, courses.courses)
	assert.Empty(t, reviews.reviews)
}

func TestBootcampListAttachesCourses(t *testing.T) {
	svc, bootcamps, courses, _ := newBootcampFixture()
	owner := publisherAccount()

	bootcamp, err := svc.Create(context.Background(), owner, createRequest())
	require.NoError(t, err)

	courseSvc := NewCourseService(courses, bootcamps)
	_, err = courseSvc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "Front End", Description: "d", Weeks: "8", Tuition: 8000, MinimumSkill: "beginner",
	})
	require.NoError(t, err)

	listed, total, err := svc.List(context.Background(), listQueryForTests())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Courses, 1)
	assert.Equal(t, "Front End", listed[0].Courses[0].Title)
}

func TestBootcampGetWithinRadiusBadZipcode(t *testing.T) {
	svc := NewBootcampService(newFakeBootcampStore(), newFakeCourseStore(), newFakeReviewStore(),
		&fakeGeocoder{err: geocoder.ErrNoResults}, nil)

	_, err := svc.GetWithinRadius(context.Background(), "00000", 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
