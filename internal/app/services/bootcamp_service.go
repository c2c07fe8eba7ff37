package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/geocoder"
	"github.com/devcampr/devcampr/internal/pkg/helpers"
	"github.com/devcampr/devcampr/internal/pkg/logger"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// BootcampService defines operations on the bootcamp directory.
type BootcampService interface {
	List(ctx context.Context, q *query.ListQuery) ([]*models.Bootcamp, int64, error)
	Get(ctx context.Context, id string) (*models.Bootcamp, error)
	Create(ctx context.Context, user *models.User, req *dto.CreateBootcampRequest) (*models.Bootcamp, error)
	Update(ctx context.Context, user *models.User, id string, req *dto.UpdateBootcampRequest) (*models.Bootcamp, error)
	Delete(ctx context.Context, user *models.User, id string) error
	GetWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*models.Bootcamp, error)
	UploadPhoto(ctx context.Context, user *models.User, id string, file *multipart.FileHeader) (string, error)
}

type bootcampService struct {
	bootcamps BootcampStore
	courses   CourseStore
	reviews   ReviewStore
	geocoder  geocoder.Geocoder
	photos    PhotoStorage
}

// NewBootcampService creates a new BootcampService.
func NewBootcampService(bootcamps BootcampStore, courses CourseStore, reviews ReviewStore, geo geocoder.Geocoder, photos PhotoStorage) BootcampService {
	return &bootcampService{
		bootcamps: bootcamps,
		courses:   courses,
		reviews:   reviews,
		geocoder:  geo,
		photos:    photos,
	}
}

// List returns a page of bootcamps with their courses attached. The reverse
// relation is resolved with a single $in query over the page's identifiers.
func (s *bootcampService) List(ctx context.Context, q *query.ListQuery) ([]*models.Bootcamp, int64, error) {
	bootcamps, total, err := s.bootcamps.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]primitive.ObjectID, 0, len(bootcamps))
	byID := make(map[primitive.ObjectID]*models.Bootcamp, len(bootcamps))
	for _, b := range bootcamps {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}

	courses, err := s.courses.ListByBootcampIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range courses {
		if b, ok := byID[c.Bootcamp]; ok {
			b.Courses = append(b.Courses, c)
		}
	}
	return bootcamps, total, nil
}

// Get returns a single bootcamp.
func (s *bootcampService) Get(ctx context.Context, id string) (*models.Bootcamp, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id of %s", id))
	}
	bootcamp, err := s.bootcamps.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundBootcamp(id, err)
	}
	return bootcamp, nil
}

// Create publishes a new bootcamp for the calling account. Publishers may
// own at most one bootcamp; admins are exempt. The slug is derived from the
// name and the address is resolved through the geocoder before the write.
func (s *bootcampService) Create(ctx context.Context, user *models.User, req *dto.CreateBootcampRequest) (*models.Bootcamp, error) {
	if !models.ValidCareerSet(req.Careers) {
		return nil, apperrors.NewValidationError("careers contains a value outside the allowed set")
	}

	if user.Role != models.RoleAdmin {
		count, err := s.bootcamps.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("The user with ID %s has already published a bootcamp", user.ID.Hex()))
		}
	}

	location, err := s.resolveLocation(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	bootcamp := &models.Bootcamp{
		Name:          req.Name,
		Slug:          helpers.Slugify(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Location:      *location,
		Careers:       req.Careers,
		Photo:         models.DefaultPhoto,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
		User:          user.ID,
	}
	return s.bootcamps.Create(ctx, bootcamp)
}

// Update applies a partial update. Only the owner or an admin may update; a
// new name re-derives the slug and a new address is re-geocoded.
func (s *bootcampService) Update(ctx context.Context, user *models.User, id string, req *dto.UpdateBootcampRequest) (*models.Bootcamp, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id of %s", id))
	}
	bootcamp, err := s.bootcamps.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundBootcamp(id, err)
	}
	if err := requireOwnership(user, bootcamp.User, "update this bootcamp"); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
		fields["slug"] = helpers.Slugify(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Address != nil {
		location, err := s.resolveLocation(ctx, *req.Address)
		if err != nil {
			return nil, err
		}
		fields["location"] = location
	}
	if req.Careers != nil {
		if !models.ValidCareerSet(req.Careers) {
			return nil, apperrors.NewValidationError("careers contains a value outside the allowed set")
		}
		fields["careers"] = req.Careers
	}
	if req.Housing != nil {
		fields["housing"] = *req.Housing
	}
	if req.JobAssistance != nil {
		fields["jobAssistance"] = *req.JobAssistance
	}
	if req.JobGuarantee != nil {
		fields["jobGuarantee"] = *req.JobGuarantee
	}
	if req.AcceptGI != nil {
		fields["acceptGi"] = *req.AcceptGI
	}
	if len(fields) == 0 {
		return bootcamp, nil
	}
	return s.bootcamps.UpdateFields(ctx, oid, fields)
}

// Delete removes a bootcamp together with its courses and reviews. The
// cascade runs before the bootcamp document goes away.
func (s *bootcampService) Delete(ctx context.Context, user *models.User, id string) error {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id of %s", id))
	}
	bootcamp, err := s.bootcamps.GetByID(ctx, oid)
	if err != nil {
		return notFoundBootcamp(id, err)
	}
	if err := requireOwnership(user, bootcamp.User, "delete this bootcamp"); err != nil {
		return err
	}

	deletedCourses, err := s.courses.DeleteByBootcamp(ctx, oid)
	if err != nil {
		return err
	}
	deletedReviews, err := s.reviews.DeleteByBootcamp(ctx, oid)
	if err != nil {
		return err
	}
	logger.Info().
		Str("bootcamp_id", id).
		Int64("courses_removed", deletedCourses).
		Int64("reviews_removed", deletedReviews).
		Msg("bootcamp cascade delete")

	return s.bootcamps.Delete(ctx, oid)
}

// GetWithinRadius returns bootcamps within distanceMiles of a zipcode. The
// zipcode is resolved to a center point through the geocoder.
func (s *bootcampService) GetWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*models.Bootcamp, error) {
	result, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResults) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("could not resolve zipcode %s", zipcode))
		}
		return nil, err
	}
	return s.bootcamps.FindWithinRadius(ctx, result.Longitude, result.Latitude, distanceMiles)
}

// UploadPhoto validates and stores a photo for a bootcamp and records the
// generated filename on the document.
func (s *bootcampService) UploadPhoto(ctx context.Context, user *models.User, id string, file *multipart.FileHeader) (string, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id of %s", id))
	}
	bootcamp, err := s.bootcamps.GetByID(ctx, oid)
	if err != nil {
		return "", notFoundBootcamp(id, err)
	}
	if err := requireOwnership(user, bootcamp.User, "update this bootcamp"); err != nil {
		return "", err
	}

	filename, err := s.photos.SavePhoto(file, fmt.Sprintf("photo_%s", oid.Hex()))
	if err != nil {
		return "", err
	}
	if err := s.bootcamps.SetPhoto(ctx, oid, filename); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *bootcampService) resolveLocation(ctx context.Context, address string) (*models.Location, error) {
	result, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResults) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("could not resolve address %q", address))
		}
		return nil, err
	}
	return &models.Location{
		Type:             "Point",
		Coordinates:      []float64{result.Longitude, result.Latitude},
		FormattedAddress: result.FormattedAddress,
		Street:           result.Street,
		City:             result.City,
		State:            result.State,
		Zipcode:          result.Zipcode,
		Country:          result.Country,
	}, nil
}

// requireOwnership allows the owning account and admins through.
func requireOwnership(user *models.User, owner primitive.ObjectID, action string) error {
	if user.Role == models.RoleAdmin || user.ID == owner {
		return nil
	}
	return apperrors.NewForbiddenError(
		fmt.Sprintf("User %s is not authorized to %s", user.ID.Hex(), action))
}

func notFoundBootcamp(id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id of %s", id))
	}
	return err
}
