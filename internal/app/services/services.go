// Package services carries the business rules: ownership checks, derived
// field recomputation, cascade steps, and the auth flows. Lifecycle hooks
// are explicit steps around the storage calls, so ordering and failure
// handling stay visible.
package services

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// UserStore is the account storage surface the services depend on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q *query.ListQuery) ([]*models.User, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// BootcampStore is the bootcamp storage surface the services depend on.
type BootcampStore interface {
	Create(ctx context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	List(ctx context.Context, q *query.ListQuery) ([]*models.Bootcamp, int64, error)
	FindWithinRadius(ctx context.Context, longitude, latitude, distanceMiles float64) ([]*models.Bootcamp, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAverageCost(ctx context.Context, id primitive.ObjectID, averageCost int) error
	UnsetAverageCost(ctx context.Context, id primitive.ObjectID) error
	SetAverageRating(ctx context.Context, id primitive.ObjectID, averageRating float64) error
	UnsetAverageRating(ctx context.Context, id primitive.ObjectID) error
	SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error
}

// CourseStore is the course storage surface the services depend on.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	List(ctx context.Context, q *query.ListQuery) ([]*models.Course, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]*models.Course, error)
	ListByBootcampIDs(ctx context.Context, bootcampIDs []primitive.ObjectID) ([]*models.Course, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error)
	AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, found bool, err error)
}

// ReviewStore is the review storage surface the services depend on.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	List(ctx context.Context, q *query.ListQuery) ([]*models.Review, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]*models.Review, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error)
	AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, found bool, err error)
}

// PhotoStorage is the upload storage surface the bootcamp service depends on.
type PhotoStorage interface {
	SavePhoto(fileHeader *multipart.FileHeader, baseName string) (string, error)
	Delete(filename string) error
}
