package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/brunofarias/jornada-lms/internal/app/controllers"
	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/models/dto"
	"github.com/brunofarias/jornada-lms/internal/middleware"
	"github.com/brunofarias/jornada-lms/internal/pkg/websocket"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Course       *controllers.CourseController
	Lesson       *controllers.LessonController
	Enrollment   *controllers.EnrollmentController
	Certificate  *controllers.CertificateController
	Notification *controllers.NotificationController
	Review       *controllers.ReviewController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	wsHandler *websocket.Handler,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
	}

	// Certificate verification is public so anyone holding a printed
	// code can validate it
	v1.GET("/certificates/verify/:code", ctrl.Certificate.Verify)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", ctrl.Auth.Logout)
	authenticated.POST("/auth/logout-all", ctrl.Auth.LogoutAll)

	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.User.GetMe)
		users.PUT("/me", ctrl.User.UpdateMe)
		users.PUT("/me/password", ctrl.User.UpdatePassword)

		usersAdmin := users.Group("")
		usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			usersAdmin.GET("", ctrl.User.GetAll)
			usersAdmin.PUT("/:id/role", ctrl.User.UpdateRole)
			usersAdmin.DELETE("/:id", ctrl.User.Delete)
		}
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.GetAll)
		courses.GET("/:id", ctrl.Course.GetByID)
		courses.GET("/:id/reviews", ctrl.Review.GetAllByCourse)

		// Student actions on a course
		courses.POST("/:id/enroll", ctrl.Enrollment.Enroll)
		courses.GET("/:id/progress", ctrl.Enrollment.GetProgress)
		courses.GET("/:id/certificate", ctrl.Certificate.GetByCourse)
		courses.POST("/:id/reviews", ctrl.Review.Create)

		coursesLeader := courses.Group("")
		coursesLeader.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
		{
			coursesLeader.POST("", ctrl.Course.Create)
			coursesLeader.PUT("/:id", ctrl.Course.Update)
			coursesLeader.PUT("/:id/publish", ctrl.Course.SetPublished)
			coursesLeader.DELETE("/:id", ctrl.Course.Delete)
			coursesLeader.POST("/:id/cover", ctrl.Course.UploadCover)
			coursesLeader.POST("/:id/modules", ctrl.Course.CreateModule)
		}
	}

	modules := authenticated.Group("/modules")
	modules.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
	{
		modules.PUT("/:moduleId", ctrl.Course.UpdateModule)
		modules.DELETE("/:moduleId", ctrl.Course.DeleteModule)
		modules.POST("/:moduleId/lessons", ctrl.Lesson.Create)
	}

	lessons := authenticated.Group("/lessons")
	{
		lessons.GET("/:id", ctrl.Lesson.GetByID)
		lessons.GET("/:id/questions", ctrl.Lesson.GetQuestions)
		lessons.POST("/:id/submit", ctrl.Lesson.SubmitQuiz)
		lessons.POST("/:id/answers", ctrl.Lesson.SubmitAnswers)
		lessons.POST("/:id/complete", ctrl.Enrollment.CompleteLesson)

		lessonsLeader := lessons.Group("")
		lessonsLeader.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
		{
			lessonsLeader.PUT("/:id", ctrl.Lesson.Update)
			lessonsLeader.DELETE("/:id", ctrl.Lesson.Delete)
			lessonsLeader.POST("/:id/video", ctrl.Lesson.UploadVideo)
			lessonsLeader.POST("/:id/questions", ctrl.Lesson.AddQuestion)
		}
	}

	questions := authenticated.Group("/questions")
	questions.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
	{
		questions.DELETE("/:questionId", ctrl.Lesson.DeleteQuestion)
	}

	// The approval gate: only leaders and admins decide enrollments
	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.GET("/me", ctrl.Enrollment.GetMine)

		enrollmentsLeader := enrollments.Group("")
		enrollmentsLeader.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
		{
			enrollmentsLeader.GET("", ctrl.Enrollment.GetAll)
			enrollmentsLeader.GET("/:id", ctrl.Enrollment.GetByID)
			enrollmentsLeader.PUT("/:id/approve", ctrl.Enrollment.Approve)
			enrollmentsLeader.PUT("/:id/reject", ctrl.Enrollment.Reject)
		}
	}

	certificates := authenticated.Group("/certificates")
	{
		certificates.GET("/me", ctrl.Certificate.GetMine)
		certificates.GET("/:id", ctrl.Certificate.GetByID)

		certificatesLeader := certificates.Group("")
		certificatesLeader.Use(authMiddleware.RoleRequired(models.RoleLeader, models.RoleAdmin))
		{
			certificatesLeader.POST("/:id/file", ctrl.Certificate.UploadArtifact)
		}
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", ctrl.Notification.GetAll)
		notifications.PUT("/:id/read", ctrl.Notification.MarkAsRead)
		notifications.PUT("/read-all", ctrl.Notification.MarkAllAsRead)
		notifications.DELETE("", ctrl.Notification.ClearAll)
		notifications.GET("/ws", wsHandler.HandleConnection)
	}

	reviews := authenticated.Group("/reviews")
	{
		reviews.DELETE("/:id", ctrl.Review.Delete)
	}
}
