package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/db"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// CourseRepository handles course storage.
type CourseRepository struct {
	col *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(database *mongo.Database) *CourseRepository {
	return &CourseRepository{col: database.Collection(db.CoursesCollection)}
}

// Create inserts a new course and returns it with its identifier set.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return nil, wrapWriteError(err)
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return course, nil
}

// GetByID retrieves a course by identifier.
func (r *CourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	course := &models.Course{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// List retrieves courses per the parsed list directives.
func (r *CourseRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Course, int64, error) {
	total, err := r.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	opts := options.Find().SetSort(q.Sort).SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	if len(q.Select) > 0 {
		opts.SetProjection(q.Projection())
	}

	cursor, err := r.col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, fmt.Errorf("error decoding courses: %w", err)
	}
	return courses, total, nil
}

// ListByBootcamp retrieves all courses belonging to one bootcamp.
func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]*models.Course, error) {
	cursor, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, fmt.Errorf("error querying courses by bootcamp: %w", err)
	}

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses by bootcamp: %w", err)
	}
	return courses, nil
}

// ListByBootcampIDs retrieves courses for a set of bootcamps in one query,
// used to resolve the read-time reverse relation on bootcamp listings.
func (r *CourseRepository) ListByBootcampIDs(ctx context.Context, bootcampIDs []primitive.ObjectID) ([]*models.Course, error) {
	if len(bootcampIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"bootcamp": bson.M{"$in": bootcampIDs}})
	if err != nil {
		return nil, fmt.Errorf("error querying courses by bootcamps: %w", err)
	}

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses by bootcamps: %w", err)
	}
	return courses, nil
}

// UpdateFields applies a partial update and returns the updated course.
func (r *CourseRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	course := &models.Course{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapWriteError(err)
	}
	return course, nil
}

// Delete removes a single course.
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByBootcamp removes every course owned by a bootcamp; the cascade
// step of bootcamp deletion.
func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return 0, fmt.Errorf("error cascading course deletion: %w", err)
	}
	return res.DeletedCount, nil
}

// AverageTuition computes the mean tuition across a bootcamp's courses.
// found is false when the bootcamp has no courses left.
func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, found bool, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$bootcamp",
			"averageTuition": bson.M{"$avg": "$tuition"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("error aggregating average tuition: %w", err)
	}

	var results []struct {
		AverageTuition float64 `bson:"averageTuition"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, false, fmt.Errorf("error decoding average tuition: %w", err)
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	return results[0].AverageTuition, true, nil
}
