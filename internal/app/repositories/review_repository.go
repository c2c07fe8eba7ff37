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

// ReviewRepository handles review storage.
type ReviewRepository struct {
	col *mongo.Collection
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(database *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: database.Collection(db.ReviewsCollection)}
}

// Create inserts a new review. A second review by the same account for the
// same bootcamp trips the unique index and maps to ErrDuplicateKey.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return nil, wrapWriteError(err)
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return review, nil
}

// GetByID retrieves a review by identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review := &models.Review{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting review by ID: %w", err)
	}
	return review, nil
}

// List retrieves reviews per the parsed list directives.
func (r *ReviewRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Review, int64, error) {
	total, err := r.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting reviews: %w", err)
	}

	opts := options.Find().SetSort(q.Sort).SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	if len(q.Select) > 0 {
		opts.SetProjection(q.Projection())
	}

	cursor, err := r.col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying reviews: %w", err)
	}

	reviews := []*models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, total, nil
}

// ListByBootcamp retrieves all reviews of one bootcamp.
func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]*models.Review, error) {
	cursor, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, fmt.Errorf("error querying reviews by bootcamp: %w", err)
	}

	reviews := []*models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews by bootcamp: %w", err)
	}
	return reviews, nil
}

// UpdateFields applies a partial update and returns the updated review.
func (r *ReviewRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	review := &models.Review{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapWriteError(err)
	}
	return review, nil
}

// Delete removes a single review.
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByBootcamp removes every review of a bootcamp; the cascade step of
// bootcamp deletion.
func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return 0, fmt.Errorf("error cascading review deletion: %w", err)
	}
	return res.DeletedCount, nil
}

// AverageRating computes the mean rating across a bootcamp's reviews.
// found is false when the bootcamp has no reviews left.
func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, found bool, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$bootcamp",
			"averageRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("error aggregating average rating: %w", err)
	}

	var results []struct {
		AverageRating float64 `bson:"averageRating"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, false, fmt.Errorf("error decoding average rating: %w", err)
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	return results[0].AverageRating, true, nil
}
