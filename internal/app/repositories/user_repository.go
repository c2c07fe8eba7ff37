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

// UserRepository handles account storage.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{col: database.Collection(db.UsersCollection)}
}

// Create inserts a new account and returns it with its identifier set.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return nil, wrapWriteError(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// GetByID retrieves an account by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves an account by email. Used by the login flow; the
// caller decides how a miss is reported.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// List retrieves accounts per the parsed list directives.
func (r *UserRepository) List(ctx context.Context, q *query.ListQuery) ([]*models.User, int64, error) {
	total, err := r.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	opts := options.Find().SetSort(q.Sort).SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	if len(q.Select) > 0 {
		opts.SetProjection(q.Projection())
	}

	cursor, err := r.col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying users: %w", err)
	}

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("error decoding users: %w", err)
	}
	return users, total, nil
}

// UpdateFields applies a partial update to an account.
func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &models.User{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapWriteError(err)
	}
	return user, nil
}

// Delete removes an account.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetResetToken stores the hashed reset token and its expiry on the account.
func (r *UserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": expire,
	}})
	if err != nil {
		return fmt.Errorf("error setting reset token: %w", err)
	}
	return nil
}

// ClearResetToken removes any stored reset token from the account.
func (r *UserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{
		"resetPasswordToken":  "",
		"resetPasswordExpire": "",
	}})
	if err != nil {
		return fmt.Errorf("error clearing reset token: %w", err)
	}
	return nil
}

// GetByResetToken retrieves the account holding an unexpired reset token
// hash. Expired or unknown tokens map to ErrInvalidResetToken.
func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	user := &models.User{}
	err := r.col.FindOne(ctx, bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": bson.M{"$gt": time.Now()},
	}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("error getting user by reset token: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash and clears any reset
// token in the same write.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
	})
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}
