package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tafahna/practicum-portal/internal/app/controllers"
	"github.com/tafahna/practicum-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	instituteController *controllers.InstituteController,
	registrationController *controllers.RegistrationController,
	letterController *controllers.LetterController,
	assistantController *controllers.AssistantController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	v1.GET("/departments", instituteController.GetDepartments)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/admin/unlock", authController.UnlockAdmin)

		institutes := authenticated.Group("/institutes")
		{
			institutes.GET("", instituteController.GetInstitutes)
			institutes.GET("/grouped", instituteController.GetInstitutesGrouped)
			institutes.GET("/:id", instituteController.GetInstituteByID)
			institutes.GET("/:id/students", instituteController.GetInstituteStudents)
			institutes.POST("/:id/registrations", registrationController.Register)
		}

		authenticated.GET("/students", instituteController.GetStudents)

		assistant := authenticated.Group("/assistant")
		{
			assistant.GET("/transcript", assistantController.GetTranscript)
			assistant.POST("/messages", assistantController.SendMessage)
		}

		// Admin-only routes
		admin := authenticated.Group("")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.POST("/institutes", instituteController.CreateInstitute)
			admin.PUT("/institutes/:id", instituteController.UpdateInstitute)
			admin.DELETE("/institutes/:id", instituteController.DeleteInstitute)
			admin.GET("/institutes/:id/letter", letterController.GetLetter)
			admin.DELETE("/students/:id", instituteController.DeleteStudent)
		}
	}
}
