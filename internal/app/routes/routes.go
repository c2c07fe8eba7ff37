// Package routes mounts the HTTP surface under /api/v1.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/controllers"
	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/middleware"
	"github.com/devcampr/devcampr/internal/pkg/auth"
)

// Controllers bundles the handler sets the route table mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Bootcamps *controllers.BootcampController
	Courses   *controllers.CourseController
	Reviews   *controllers.ReviewController
	Users     *controllers.UserController
}

// Register mounts every endpoint on the router. Write endpoints sit behind
// authentication plus a role check; ownership is enforced in the services.
func Register(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService, users middleware.UserLoader) {
	authenticated := middleware.JWTAuth(jwtService, users)
	publisherOrAdmin := middleware.RoleRequired(models.RolePublisher, models.RoleAdmin)
	userOrAdmin := middleware.RoleRequired(models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Auth.Register)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.GET("/logout", ctrl.Auth.Logout)
		authGroup.POST("/forgotpassword", ctrl.Auth.ForgotPassword)
		authGroup.PUT("/resetpassword/:resettoken", ctrl.Auth.ResetPassword)
		authGroup.GET("/me", authenticated, ctrl.Auth.GetMe)
		authGroup.PUT("/updatedetails", authenticated, ctrl.Auth.UpdateDetails)
		authGroup.PUT("/updatepassword", authenticated, ctrl.Auth.UpdatePassword)
	}

	bootcamps := v1.Group("/bootcamps")
	{
		bootcamps.GET("", ctrl.Bootcamps.GetBootcamps)
		bootcamps.GET("/:id", ctrl.Bootcamps.GetBootcamp)
		bootcamps.GET("/radius/:zipcode/:distance", ctrl.Bootcamps.GetBootcampsInRadius)
		bootcamps.POST("", authenticated, publisherOrAdmin, ctrl.Bootcamps.CreateBootcamp)
		bootcamps.PUT("/:id", authenticated, publisherOrAdmin, ctrl.Bootcamps.UpdateBootcamp)
		bootcamps.DELETE("/:id", authenticated, publisherOrAdmin, ctrl.Bootcamps.DeleteBootcamp)
		bootcamps.PUT("/:id/photo", authenticated, publisherOrAdmin, ctrl.Bootcamps.UploadBootcampPhoto)

		bootcamps.GET("/:id/courses", ctrl.Courses.GetBootcampCourses)
		bootcamps.POST("/:id/courses", authenticated, publisherOrAdmin, ctrl.Courses.CreateCourse)

		bootcamps.GET("/:id/reviews", ctrl.Reviews.GetBootcampReviews)
		bootcamps.POST("/:id/reviews", authenticated, userOrAdmin, ctrl.Reviews.CreateReview)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", ctrl.Courses.GetCourses)
		courses.GET("/:id", ctrl.Courses.GetCourse)
		courses.PUT("/:id", authenticated, publisherOrAdmin, ctrl.Courses.UpdateCourse)
		courses.DELETE("/:id", authenticated, publisherOrAdmin, ctrl.Courses.DeleteCourse)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", ctrl.Reviews.GetReviews)
		reviews.GET("/:id", ctrl.Reviews.GetReview)
		reviews.PUT("/:id", authenticated, userOrAdmin, ctrl.Reviews.UpdateReview)
		reviews.DELETE("/:id", authenticated, userOrAdmin, ctrl.Reviews.DeleteReview)
	}

	usersGroup := v1.Group("/users", authenticated, adminOnly)
	{
		usersGroup.GET("", ctrl.Users.GetUsers)
		usersGroup.POST("", ctrl.Users.CreateUser)
		usersGroup.GET("/:id", ctrl.Users.GetUser)
		usersGroup.PUT("/:id", ctrl.Users.UpdateUser)
		usersGroup.DELETE("/:id", ctrl.Users.DeleteUser)
	}
}
