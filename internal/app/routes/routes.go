package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorlink/mentorlink/internal/app/controllers"
	"github.com/mentorlink/mentorlink/internal/app/models"
	"github.com/mentorlink/mentorlink/internal/app/models/dto"
	"github.com/mentorlink/mentorlink/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	mentorController *controllers.MentorController,
	communityController *controllers.CommunityController,
	matchingController *controllers.MatchingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public profile creation routes ---
	// Profiles are created before a session exists, the platform identity
	// service issues the token afterwards.
	v1.POST("/students", middleware.ValidateRequest(dto.CreateStudentRequest{}), studentController.CreateStudent)
	v1.POST("/mentors", middleware.ValidateRequest(dto.CreateMentorRequest{}), mentorController.CreateMentor)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetMyProfile)
			students.PATCH("/me", studentController.UpdateStudent)
			students.GET("/:id", studentController.GetStudentByID)
		}

		// Mentor routes
		mentors := authenticated.Group("/mentors")
		{
			mentors.GET("", mentorController.FindMentors)
			mentors.GET("/:id", mentorController.GetMentorByID)
			mentors.GET("/:id/stats", matchingController.GetMentorStats)
			mentors.POST("/:id/verify", mentorController.VerifyMentor)

			// Mentor-only self management routes
			mentorsSelf := mentors.Group("/me")
			mentorsSelf.Use(authMiddleware.RequireUserType(string(models.UserTypeMentor)))
			{
				mentorsSelf.PATCH("/availability", mentorController.UpdateAvailability)
				mentorsSelf.DELETE("", mentorController.DeactivateMentor)
				mentorsSelf.POST("/profile-picture", mentorController.UploadProfilePicture)
				mentorsSelf.POST("/verification-documents", mentorController.UploadVerificationDocument)
			}
		}

		// Community routes
		communities := authenticated.Group("/communities")
		{
			communities.GET("", communityController.GetAllCommunities)
			communities.GET("/:id", communityController.GetCommunityByID)
			communities.POST("", communityController.CreateCommunity)

			// Membership lifecycle
			communities.POST("/:id/join", communityController.JoinCommunity)
			communities.POST("/:id/leave", communityController.LeaveCommunity)
			communities.POST("/:id/events", communityController.CreateEvent)
			communities.POST("/:id/resources", communityController.AddResource)
			communities.PATCH("/:id/settings", communityController.UpdateSettings)
		}

		// Matching routes
		matching := authenticated.Group("/matching")
		{
			matching.GET("/communities", matchingController.RecommendCommunities)

			// Student-only matching routes
			matchingStudent := matching.Group("")
			matchingStudent.Use(authMiddleware.RequireUserType(string(models.UserTypeStudent)))
			{
				matchingStudent.GET("/mentors", matchingController.FindMentors)
				matchingStudent.POST("/requests", matchingController.CreateRequest)
				matchingStudent.GET("/requests", matchingController.GetMyRequests)
				matchingStudent.POST("/requests/:id/complete", matchingController.CompleteRequest)
			}

			// Mentor-only matching routes
			matchingMentor := matching.Group("")
			matchingMentor.Use(authMiddleware.RequireUserType(string(models.UserTypeMentor)))
			{
				matchingMentor.GET("/requests/incoming", matchingController.GetIncomingRequests)
				matchingMentor.POST("/requests/:id/respond", matchingController.RespondRequest)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
