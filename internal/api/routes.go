package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"academic_records/internal/api/handlers"
	"academic_records/internal/middleware"
	"academic_records/internal/service"
)

// profileRoutes is implemented by handlers.ProfileHandler for every profile kind
type profileRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func SetupRoutes(r *gin.Engine, services *service.Services, logger *slog.Logger) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	studentHandler := handlers.NewStudentHandler(services.Student, logger)
	teacherHandler := handlers.NewTeacherHandler(services.Teacher, logger)

	// Request id, access log and panic recovery on every route
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())

	// API route group
	api := r.Group("/api")

	// Unknown paths
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})

	// Public routes
	{
		// Account
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Basic health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// Routes that need a bearer token
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(services.Auth, logger))
	{
		// Current session
		authorized.GET("/user", authHandler.Me)        // authenticated user with roles
		authorized.POST("/logout", authHandler.Logout) // revoke the presented token

		// Profiles
		resource(authorized.Group("/students"), studentHandler)
		resource(authorized.Group("/teachers"), teacherHandler)
	}
}

// resource registers the five CRUD routes; PUT and PATCH both do a partial update
func resource(g *gin.RouterGroup, h profileRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
