package repositories

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devcampr/devcampr/internal/pkg/apperrors"
)

// Repositories bundles all collection repositories for dependency wiring.
type Repositories struct {
	Users     *UserRepository
	Bootcamps *BootcampRepository
	Courses   *CourseRepository
	Reviews   *ReviewRepository
}

// NewRepositories creates the repository container for a database handle.
func NewRepositories(database *mongo.Database) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Bootcamps: NewBootcampRepository(database),
		Courses:   NewCourseRepository(database),
		Reviews:   NewReviewRepository(database),
	}
}

// ParseObjectID converts a path identifier to an ObjectID. A malformed
// identifier maps to ErrNotFound, matching the lookup-miss contract.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrNotFound
	}
	return oid, nil
}

// wrapWriteError maps storage-level unique violations onto the duplicate-key
// sentinel so the central translator can answer 400.
func wrapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateKey
	}
	return err
}
