// Package seed loads the fixture data set into the database, or wipes it.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/db"
	"github.com/devcampr/devcampr/internal/pkg/auth"
	"github.com/devcampr/devcampr/internal/pkg/logger"
)

// fixtureUser carries the plaintext password the account model never
// accepts from JSON.
type fixtureUser struct {
	models.User
	Password string `json:"password"`
}

// Import loads the JSON fixtures from dataDir into the database. Fixture
// passwords are plaintext and hashed on the way in; derived averages are
// recomputed after the load so the documents match what the API maintains.
func Import(ctx context.Context, database *mongo.Database, dataDir string) error {
	var fixtureUsers []*fixtureUser
	if err := readFixture(dataDir, "users.json", &fixtureUsers); err != nil {
		return err
	}
	var bootcamps []*models.Bootcamp
	if err := readFixture(dataDir, "bootcamps.json", &bootcamps); err != nil {
		return err
	}
	var courses []*models.Course
	if err := readFixture(dataDir, "courses.json", &courses); err != nil {
		return err
	}
	var reviews []*models.Review
	if err := readFixture(dataDir, "reviews.json", &reviews); err != nil {
		return err
	}

	now := time.Now()
	users := make([]*models.User, 0, len(fixtureUsers))
	for _, fu := range fixtureUsers {
		hash, err := auth.HashPassword(fu.Password)
		if err != nil {
			return fmt.Errorf("failed to hash fixture password for %s: %w", fu.Email, err)
		}
		user := fu.User
		user.Password = hash
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		users = append(users, &user)
	}
	for _, b := range bootcamps {
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
	}
	for _, c := range courses {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	}
	for _, r := range reviews {
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	}

	if err := insertAll(ctx, database, db.UsersCollection, users); err != nil {
		return err
	}
	if err := insertAll(ctx, database, db.BootcampsCollection, bootcamps); err != nil {
		return err
	}
	if err := insertAll(ctx, database, db.CoursesCollection, courses); err != nil {
		return err
	}
	if err := insertAll(ctx, database, db.ReviewsCollection, reviews); err != nil {
		return err
	}

	if err := recomputeAverages(ctx, database, bootcamps); err != nil {
		return err
	}

	logger.Info().
		Int("users", len(users)).
		Int("bootcamps", len(bootcamps)).
		Int("courses", len(courses)).
		Int("reviews", len(reviews)).
		Msg("fixtures imported")
	return nil
}

// Destroy wipes every collection the fixtures touch.
func Destroy(ctx context.Context, database *mongo.Database) error {
	for _, collection := range []string{
		db.UsersCollection,
		db.BootcampsCollection,
		db.CoursesCollection,
		db.ReviewsCollection,
	} {
		if _, err := database.Collection(collection).DeleteMany(ctx, map[string]interface{}{}); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", collection, err)
		}
	}
	logger.Info().Msg("data destroyed")
	return nil
}

func readFixture(dataDir, name string, out interface{}) error {
	path := filepath.Join(dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, database *mongo.Database, collection string, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	payload := make([]interface{}, len(docs))
	for i, doc := range docs {
		payload[i] = doc
	}
	if _, err := database.Collection(collection).InsertMany(ctx, payload); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

func recomputeAverages(ctx context.Context, database *mongo.Database, bootcamps []*models.Bootcamp) error {
	repos := repositories.NewRepositories(database)
	for _, bootcamp := range bootcamps {
		avgTuition, found, err := repos.Courses.AverageTuition(ctx, bootcamp.ID)
		if err != nil {
			return err
		}
		if found {
			if err := repos.Bootcamps.SetAverageCost(ctx, bootcamp.ID, services.RoundCostToTens(avgTuition)); err != nil {
				return err
			}
		}

		avgRating, found, err := repos.Reviews.AverageRating(ctx, bootcamp.ID)
		if err != nil {
			return err
		}
		if found {
			if err := repos.Bootcamps.SetAverageRating(ctx, bootcamp.ID, avgRating); err != nil {
				return err
			}
		}
	}
	return nil
}
