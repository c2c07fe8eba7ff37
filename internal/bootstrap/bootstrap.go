// Package bootstrap assembles the application: configuration, logging,
// storage, services, controllers and the router.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devcampr/devcampr/internal/app/controllers"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/app/routes"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/config"
	"github.com/devcampr/devcampr/internal/db"
	"github.com/devcampr/devcampr/internal/middleware"
	"github.com/devcampr/devcampr/internal/pkg/auth"
	"github.com/devcampr/devcampr/internal/pkg/email"
	"github.com/devcampr/devcampr/internal/pkg/filestorage"
	"github.com/devcampr/devcampr/internal/pkg/geocoder"
	"github.com/devcampr/devcampr/internal/pkg/logger"
)

// Dependencies holds everything the server needs to run and shut down.
type Dependencies struct {
	Config       *config.Config
	MongoClient  *mongo.Client
	Repositories *repositories.Repositories
	JWTService   *auth.JWTService
	Controllers  routes.Controllers
	Storage      *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads the configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Format == "console",
	})
	return cfg, nil
}

// SetupDatabase connects to MongoDB and creates the required indexes.
func SetupDatabase(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	client, database, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return client, database, nil
}

// BuildDependencies wires the repositories, services and controllers.
func BuildDependencies(cfg *config.Config, client *mongo.Client, database *mongo.Database) (*Dependencies, error) {
	repos := repositories.NewRepositories(database)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    config.ParseDuration(cfg.JWT.TokenExpiration, 720*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	mailer := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, log.Logger)

	geo := geocoder.NewClient(geocoder.Config{
		BaseURL: cfg.Geocoder.BaseURL,
		APIKey:  cfg.Geocoder.APIKey,
	})

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	resetTTL := config.ParseDuration(cfg.Auth.ResetTokenExpiration, 10*time.Minute)

	authService := services.NewAuthService(repos.Users, jwtService, mailer, resetTTL)
	bootcampService := services.NewBootcampService(repos.Bootcamps, repos.Courses, repos.Reviews, geo, storage)
	courseService := services.NewCourseService(repos.Courses, repos.Bootcamps)
	reviewService := services.NewReviewService(repos.Reviews, repos.Bootcamps)
	userService := services.NewUserService(repos.Users)

	secureCookie := cfg.Server.Mode == "production"
	tokenExpiry := jwtService.TokenExpiry()

	return &Dependencies{
		Config:       cfg,
		MongoClient:  client,
		Repositories: repos,
		JWTService:   jwtService,
		Storage:      storage,
		Controllers: routes.Controllers{
			Auth:      controllers.NewAuthController(authService, tokenExpiry, cfg.Server.BaseURL, secureCookie),
			Bootcamps: controllers.NewBootcampController(bootcampService),
			Courses:   controllers.NewCourseController(courseService),
			Reviews:   controllers.NewReviewController(reviewService),
			Users:     controllers.NewUserController(userService),
		},
	}, nil
}

// SetupRouter builds the gin engine with the cross-cutting middleware, the
// static upload mount, the API routes and the documentation endpoint.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.Static("/uploads", deps.Storage.BasePath())

	routes.Register(router, deps.Controllers, deps.JWTService, deps.Repositories.Users)
	routes.RegisterSwagger(router)

	return router
}
