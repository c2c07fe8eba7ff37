package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/logger"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// ReviewService defines operations on reviews.
type ReviewService interface {
	List(ctx context.Context, q *query.ListQuery) ([]*models.Review, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*models.Review, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, user *models.User, bootcampID string, req *dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, user *models.User, id string, req *dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, user *models.User, id string) error
}

type reviewService struct {
	reviews   ReviewStore
	bootcamps BootcampStore
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ReviewStore, bootcamps BootcampStore) ReviewService {
	return &reviewService{reviews: reviews, bootcamps: bootcamps}
}

// List returns a page of reviews.
func (s *reviewService) List(ctx context.Context, q *query.ListQuery) ([]*models.Review, int64, error) {
	return s.reviews.List(ctx, q)
}

// ListByBootcamp returns every review of one bootcamp.
func (s *reviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*models.Review, error) {
	oid, err := repositories.ParseObjectID(bootcampID)
	if err != nil {
		return nil, notFoundBootcamp(bootcampID, apperrors.ErrNotFound)
	}
	if _, err := s.bootcamps.GetByID(ctx, oid); err != nil {
		return nil, notFoundBootcamp(bootcampID, err)
	}
	return s.reviews.ListByBootcamp(ctx, oid)
}

// Get returns a single review.
func (s *reviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundReview(id, apperrors.ErrNotFound)
	}
	review, err := s.reviews.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundReview(id, err)
	}
	return review, nil
}

// Create adds a review to a bootcamp. The unique index limits each account
// to one review per bootcamp; a second attempt maps to a duplicate-key
// error. The bootcamp's average rating is recomputed after the write.
func (s *reviewService) Create(ctx context.Context, user *models.User, bootcampID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	oid, err := repositories.ParseObjectID(bootcampID)
	if err != nil {
		return nil, notFoundBootcamp(bootcampID, apperrors.ErrNotFound)
	}
	if _, err := s.bootcamps.GetByID(ctx, oid); err != nil {
		return nil, notFoundBootcamp(bootcampID, err)
	}

	review := &models.Review{
		Title:    req.Title,
		Text:     req.Text,
		Rating:   req.Rating,
		Bootcamp: oid,
		User:     user.ID,
	}
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("account has already reviewed this bootcamp")
		}
		return nil, err
	}
	s.recomputeAverageRating(ctx, oid)
	return created, nil
}

// Update applies a partial update. Only the review author or an admin may
// update; a rating change triggers an average rating recompute.
func (s *reviewService) Update(ctx context.Context, user *models.User, id string, req *dto.UpdateReviewRequest) (*models.Review, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundReview(id, apperrors.ErrNotFound)
	}
	review, err := s.reviews.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundReview(id, err)
	}
	if err := requireOwnership(user, review.User, fmt.Sprintf("update review %s", id)); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if len(fields) == 0 {
		return review, nil
	}

	updated, err := s.reviews.UpdateFields(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		s.recomputeAverageRating(ctx, review.Bootcamp)
	}
	return updated, nil
}

// Delete removes a review and recomputes the bootcamp's average rating.
func (s *reviewService) Delete(ctx context.Context, user *models.User, id string) error {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return notFoundReview(id, apperrors.ErrNotFound)
	}
	review, err := s.reviews.GetByID(ctx, oid)
	if err != nil {
		return notFoundReview(id, err)
	}
	if err := requireOwnership(user, review.User, fmt.Sprintf("delete review %s", id)); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, oid); err != nil {
		return err
	}
	s.recomputeAverageRating(ctx, review.Bootcamp)
	return nil
}

// recomputeAverageRating refreshes the bootcamp's derived average rating
// after a review write. Failures are logged, never surfaced.
func (s *reviewService) recomputeAverageRating(ctx context.Context, oid primitive.ObjectID) {
	avg, found, err := s.reviews.AverageRating(ctx, oid)
	if err != nil {
		logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average rating aggregation failed")
		return
	}
	if !found {
		if err := s.bootcamps.UnsetAverageRating(ctx, oid); err != nil {
			logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average rating unset failed")
		}
		return
	}
	if err := s.bootcamps.SetAverageRating(ctx, oid, avg); err != nil {
		logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average rating update failed")
	}
}

func notFoundReview(id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("Review not found with id of %s", id))
	}
	return err
}
