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

func publisherAccount() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "John Doe", Role: models.RolePublisher}
}

func adminAccount() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: "Admin", Role: models.RoleAdmin}
}

func seedBootcamp(store *fakeBootcampStore, owner *models.User) *models.Bootcamp {
	bootcamp, _ := store.Create(context.Background(), &models.Bootcamp{
		Name: "Devworks Bootcamp",
		Slug: "devworks-bootcamp",
		User: owner.ID,
	})
	return bootcamp
}

func TestRoundCostToTens(t *testing.T) {
	tests := []struct {
		avg  float64
		want int
	}{
		{9000, 9000},
		{9001, 9010},
		{8999.5, 9000},
		{8333.33, 8340},
		{5, 10},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundCostToTens(tt.avg), "avg %v", tt.avg)
	}
}

func TestCourseCreateRecomputesAverageCost(t *testing.T) {
	owner := publisherAccount()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewCourseService(courses, bootcamps)

	_, err := svc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "Front End Web Development", Description: "d", Weeks: "8",
		Tuition: 8000, MinimumSkill: "beginner",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "Full Stack Web Development", Description: "d", Weeks: "12",
		Tuition: 10001, MinimumSkill: "intermediate",
	})
	require.NoError(t, err)

	// mean(8000, 10001) = 9000.5, rounded up to the next ten.
	assert.Equal(t, 9010, bootcamps.averageCost[bootcamp.ID])
}

func TestCourseDeleteUnsetsAverageCostWhenLastCourseGoes(t *testing.T) {
	owner := publisherAccount()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewCourseService(courses, bootcamps)

	created, err := svc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "UI/UX", Description: "d", Weeks: "12", Tuition: 10000, MinimumSkill: "intermediate",
	})
	require.NoError(t, err)
	require.Contains(t, bootcamps.averageCost, bootcamp.ID)

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID.Hex()))
	assert.NotContains(t, bootcamps.averageCost, bootcamp.ID)
}

func TestCourseCreateRejectsNonOwner(t *testing.T) {
	owner := publisherAccount()
	stranger := publisherAccount()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewCourseService(courses, bootcamps)

	_, err := svc.Create(context.Background(), stranger, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "t", Description: "d", Weeks: "1", Tuition: 1, MinimumSkill: "beginner",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCourseCreateAllowsAdminOnForeignBootcamp(t *testing.T) {
	owner := publisherAccount()
	admin := adminAccount()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewCourseService(courses, bootcamps)

	course, err := svc.Create(context.Background(), admin, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "t", Description: "d", Weeks: "1", Tuition: 1, MinimumSkill: "beginner",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, course.User)
	assert.Equal(t, bootcamp.ID, course.Bootcamp)
}

func TestCourseCreateUnknownBootcamp(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), newFakeBootcampStore())

	_, err := svc.Create(context.Background(), publisherAccount(), primitive.NewObjectID().Hex(), &dto.CreateCourseRequest{
		Title: "t", Description: "d", Weeks: "1", Tuition: 1, MinimumSkill: "beginner",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCourseGetMalformedID(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), newFakeBootcampStore())

	_, err := svc.Get(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCourseUpdateTuitionRecomputes(t *testing.T) {
	owner := publisherAccount()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()
	bootcamp := seedBootcamp(bootcamps, owner)
	svc := NewCourseService(courses, bootcamps)

	created, err := svc.Create(context.Background(), owner, bootcamp.ID.Hex(), &dto.CreateCourseRequest{
		Title: "t", Description: "d", Weeks: "1", Tuition: 8000, MinimumSkill: "beginner",
	})
	require.NoError(t, err)
	require.Equal(t, 8000, bootcamps.averageCost[bootcamp.ID])

	newTuition := 12345.0
	_, err = svc.Update(context.Background(), owner, created.ID.Hex(), &dto.UpdateCourseRequest{Tuition: &newTuition})
	require.NoError(t, err)
	assert.Equal(t, 12350, bootcamps.averageCost[bootcamp.ID])
}
