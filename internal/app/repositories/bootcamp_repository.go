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

// EarthRadiusMiles is used to convert a distance to radians for the
// $centerSphere radius search.
const EarthRadiusMiles = 3963.0

// BootcampRepository handles bootcamp storage.
type BootcampRepository struct {
	col *mongo.Collection
}

// NewBootcampRepository creates a new BootcampRepository.
func NewBootcampRepository(database *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: database.Collection(db.BootcampsCollection)}
}

// Create inserts a new bootcamp and returns it with its identifier set.
func (r *BootcampRepository) Create(ctx context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error) {
	bootcamp.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, bootcamp)
	if err != nil {
		return nil, wrapWriteError(err)
	}
	bootcamp.ID = res.InsertedID.(primitive.ObjectID)
	return bootcamp, nil
}

// GetByID retrieves a bootcamp by identifier.
func (r *BootcampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	bootcamp := &models.Bootcamp{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(bootcamp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting bootcamp by ID: %w", err)
	}
	return bootcamp, nil
}

// List retrieves bootcamps per the parsed list directives.
func (r *BootcampRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.Bootcamp, int64, error) {
	total, err := r.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bootcamps: %w", err)
	}

	opts := options.Find().SetSort(q.Sort).SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	if len(q.Select) > 0 {
		opts.SetProjection(q.Projection())
	}

	cursor, err := r.col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying bootcamps: %w", err)
	}

	bootcamps := []*models.Bootcamp{}
	if err := cursor.All(ctx, &bootcamps); err != nil {
		return nil, 0, fmt.Errorf("error decoding bootcamps: %w", err)
	}
	return bootcamps, total, nil
}

// FindWithinRadius retrieves bootcamps whose location lies within the given
// distance (miles) of a center point.
func (r *BootcampRepository) FindWithinRadius(ctx context.Context, longitude, latitude, distanceMiles float64) ([]*models.Bootcamp, error) {
	radius := distanceMiles / EarthRadiusMiles
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{longitude, latitude}, radius},
			},
		},
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying bootcamps in radius: %w", err)
	}

	bootcamps := []*models.Bootcamp{}
	if err := cursor.All(ctx, &bootcamps); err != nil {
		return nil, fmt.Errorf("error decoding bootcamps in radius: %w", err)
	}
	return bootcamps, nil
}

// CountByUser returns how many bootcamps an account owns.
func (r *BootcampRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("error counting bootcamps by user: %w", err)
	}
	return count, nil
}

// UpdateFields applies a partial update and returns the updated bootcamp.
func (r *BootcampRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	bootcamp := &models.Bootcamp{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(bootcamp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapWriteError(err)
	}
	return bootcamp, nil
}

// Delete removes a single bootcamp. Cascade steps run in the service before
// this call so the reference is still resolvable.
func (r *BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting bootcamp: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAverageCost persists the derived average cost.
func (r *BootcampRepository) SetAverageCost(ctx context.Context, id primitive.ObjectID, averageCost int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"averageCost": averageCost}})
	if err != nil {
		return fmt.Errorf("error setting average cost: %w", err)
	}
	return nil
}

// UnsetAverageCost clears the derived average cost when the last course is
// removed.
func (r *BootcampRepository) UnsetAverageCost(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{"averageCost": ""}})
	if err != nil {
		return fmt.Errorf("error unsetting average cost: %w", err)
	}
	return nil
}

// SetAverageRating persists the derived average rating.
func (r *BootcampRepository) SetAverageRating(ctx context.Context, id primitive.ObjectID, averageRating float64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"averageRating": averageRating}})
	if err != nil {
		return fmt.Errorf("error setting average rating: %w", err)
	}
	return nil
}

// UnsetAverageRating clears the derived average rating when the last review
// is removed.
func (r *BootcampRepository) UnsetAverageRating(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{"averageRating": ""}})
	if err != nil {
		return fmt.Errorf("error unsetting average rating: %w", err)
	}
	return nil
}

// SetPhoto stores the uploaded photo filename on the bootcamp.
func (r *BootcampRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": filename}})
	if err != nil {
		return fmt.Errorf("error setting photo: %w", err)
	}
	return nil
}
