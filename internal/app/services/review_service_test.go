package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
)

func reviewerAccount() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "Kevin Smith", Role: models.RoleUser}
}

func TestReviewCreateRecomputesAverageRating(t *testing.T) {
	owner := publisherAccount()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewReviewService(reviews, bootcamps)

	_, err := svc.Create(context.Background(), reviewerAccount(), bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Learned a ton!", Text: "t", Rating: 8,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), reviewerAccount(), bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Solid", Text: "t", Rating: 9,
	})
	require.NoError(t, err)

	assert.InDelta(t, 8.5, bootcamps.averageRating[bootcamp.ID], 1e-9)
}

func TestReviewCreateRejectsSecondReviewBySameAccount(t *testing.T) {
	owner := publisherAccount()
	reviewer := reviewerAccount()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewReviewService(reviews, bootcamps)

	_, err := svc.Create(context.Background(), reviewer, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "First", Text: "t", Rating: 7,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), reviewer, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Second", Text: "t", Rating: 9,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestReviewDeleteUnsetsAverageRatingWhenLastReviewGoes(t *testing.T) {
	owner := publisherAccount()
	reviewer := reviewerAccount()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewReviewService(reviews, bootcamps)

	created, err := svc.Create(context.Background(), reviewer, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Only one", Text: "t", Rating: 6,
	})
	require.NoError(t, err)
	require.Contains(t, bootcamps.averageRating, bootcamp.ID)

	require.NoError(t, svc.Delete(context.Background(), reviewer, created.ID.Hex()))
	assert.NotContains(t, bootcamps.averageRating, bootcamp.ID)
}

func TestReviewUpdateRejectsOtherAccount(t *testing.T) {
	owner := publisherAccount()
	author := reviewerAccount()
	other := reviewerAccount()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewReviewService(reviews, bootcamps)

	created, err := svc.Create(context.Background(), author, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Mine", Text: "t", Rating: 5,
	})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), other, created.ID.Hex(), &dto.UpdateReviewRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestReviewDeleteAllowsAdmin(t *testing.T) {
	owner := publisherAccount()
	author := reviewerAccount()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewReviewService(reviews, bootcamps)

	created, err := svc.Create(context.Background(), author, bootcamp.ID.Hex(), &dto.CreateReviewRequest{
		Title: "Mine", Text: "t", Rating: 5,
	})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), adminAccount(), created.ID.Hex()))
}
