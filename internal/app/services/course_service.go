package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/logger"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// CourseService defines operations on courses.
type CourseService interface {
	List(ctx context.Context, q *query.ListQuery) ([]*models.Course, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, user *models.User, bootcampID string, req *dto.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, user *models.User, id string, req *dto.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, user *models.User, id string) error
}

type courseService struct {
	courses   CourseStore
	bootcamps BootcampStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, bootcamps BootcampStore) CourseService {
	return &courseService{courses: courses, bootcamps: bootcamps}
}

// List returns a page of courses.
func (s *courseService) List(ctx context.Context, q *query.ListQuery) ([]*models.Course, int64, error) {
	return s.courses.List(ctx, q)
}

// ListByBootcamp returns every course of one bootcamp.
func (s *courseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*models.Course, error) {
	oid, err := repositories.ParseObjectID(bootcampID)
	if err != nil {
		return nil, notFoundBootcamp(bootcampID, apperrors.ErrNotFound)
	}
	if _, err := s.bootcamps.GetByID(ctx, oid); err != nil {
		return nil, notFoundBootcamp(bootcampID, err)
	}
	return s.courses.ListByBootcamp(ctx, oid)
}

// Get returns a single course.
func (s *courseService) Get(ctx context.Context, id string) (*models.Course, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundCourse(id, apperrors.ErrNotFound)
	}
	course, err := s.courses.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundCourse(id, err)
	}
	return course, nil
}

// Create adds a course under a bootcamp. Only the bootcamp owner or an
// admin may add courses. The bootcamp's average cost is recomputed after
// the write.
func (s *courseService) Create(ctx context.Context, user *models.User, bootcampID string, req *dto.CreateCourseRequest) (*models.Course, error) {
	oid, err := repositories.ParseObjectID(bootcampID)
	if err != nil {
		return nil, notFoundBootcamp(bootcampID, apperrors.ErrNotFound)
	}
	bootcamp, err := s.bootcamps.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundBootcamp(bootcampID, err)
	}
	if err := requireOwnership(user, bootcamp.User, fmt.Sprintf("add a course to bootcamp %s", bootcampID)); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         models.SkillLevel(req.MinimumSkill),
		ScholarshipAvailable: req.ScholarshipAvailable,
		Bootcamp:             oid,
		User:                 user.ID,
	}
	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, oid)
	return created, nil
}

// Update applies a partial update. Only the course owner or an admin may
// update; a tuition change triggers an average cost recompute.
func (s *courseService) Update(ctx context.Context, user *models.User, id string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundCourse(id, apperrors.ErrNotFound)
	}
	course, err := s.courses.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundCourse(id, err)
	}
	if err := requireOwnership(user, course.User, fmt.Sprintf("update course %s", id)); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Weeks != nil {
		fields["weeks"] = *req.Weeks
	}
	if req.Tuition != nil {
		fields["tuition"] = *req.Tuition
	}
	if req.MinimumSkill != nil {
		fields["minimumSkill"] = *req.MinimumSkill
	}
	if req.ScholarshipAvailable != nil {
		fields["scholarshipAvailable"] = *req.ScholarshipAvailable
	}
	if len(fields) == 0 {
		return course, nil
	}

	updated, err := s.courses.UpdateFields(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if req.Tuition != nil {
		s.recomputeAverageCost(ctx, course.Bootcamp)
	}
	return updated, nil
}

// Delete removes a course and recomputes the bootcamp's average cost.
func (s *courseService) Delete(ctx context.Context, user *models.User, id string) error {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return notFoundCourse(id, apperrors.ErrNotFound)
	}
	course, err := s.courses.GetByID(ctx, oid)
	if err != nil {
		return notFoundCourse(id, err)
	}
	if err := requireOwnership(user, course.User, fmt.Sprintf("delete course %s", id)); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, oid); err != nil {
		return err
	}
	s.recomputeAverageCost(ctx, course.Bootcamp)
	return nil
}

// recomputeAverageCost refreshes the bootcamp's derived average cost after a
// course write. Recompute failures are logged, never surfaced; the course
// write itself already succeeded.
func (s *courseService) recomputeAverageCost(ctx context.Context, oid primitive.ObjectID) {
	avg, found, err := s.courses.AverageTuition(ctx, oid)
	if err != nil {
		logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average cost aggregation failed")
		return
	}
	if !found {
		if err := s.bootcamps.UnsetAverageCost(ctx, oid); err != nil {
			logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average cost unset failed")
		}
		return
	}
	if err := s.bootcamps.SetAverageCost(ctx, oid, RoundCostToTens(avg)); err != nil {
		logger.Error().Err(err).Str("bootcamp_id", oid.Hex()).Msg("average cost update failed")
	}
}

// RoundCostToTens rounds a mean tuition up to the nearest ten.
func RoundCostToTens(avg float64) int {
	return int(math.Ceil(avg/10)) * 10
}

func notFoundCourse(id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("Course not found with id of %s", id))
	}
	return err
}
