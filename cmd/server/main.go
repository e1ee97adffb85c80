package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/config"
	"github.com/workrec/workhour-api/internal/constants"
	"github.com/workrec/workhour-api/internal/database"
	"github.com/workrec/workhour-api/internal/handlers"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/repository"
	"github.com/workrec/workhour-api/internal/services"
	"github.com/workrec/workhour-api/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	tokens := token.NewManager(cfg.JWTSecret, constants.TokenValidityHours)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	recordRepo := repository.NewWorkRecordRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	// Services
	verifier := services.StaticCodeVerifier{Code: cfg.VerifyCode}
	authService := services.NewAuthService(userRepo, orgRepo, verifier, tokens)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	employeeService := services.NewEmployeeService(memberRepo, userRepo, orgRepo)
	projectService := services.NewProjectService(projectRepo, orgRepo)
	recordService := services.NewWorkRecordService(recordRepo, memberRepo, projectRepo)
	invitationService := services.NewInvitationService(invitationRepo, memberRepo, orgRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	recordHandler := handlers.NewWorkRecordHandler(recordService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Workhour API is running",
		})
	})

	// API routes; bodies carry what path parameters usually would, so every
	// business route is POST.
	api := r.Group("/api")
	{
		// Auth routes (public except profile/token)
		auth := api.Group("/auth")
		{
			auth.POST("/login-or-register", authHandler.LoginOrRegister)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/profile", middleware.RequireAuth(tokens), authHandler.Profile)
			auth.POST("/token", middleware.RequireAuth(tokens), authHandler.Token)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth(tokens))
		{
			orgs.POST("/create", orgHandler.Create)
			orgs.POST("/list", orgHandler.List)
			orgs.POST("/detail", orgHandler.Detail)
			orgs.POST("/update", orgHandler.Update)
			orgs.POST("/delete", orgHandler.Delete)
			orgs.POST("/leave", orgHandler.Leave)
			orgs.POST("/switch", orgHandler.Switch)
		}

		// Employee routes (protected)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth(tokens))
		{
			employees.POST("/create", employeeHandler.Create)
			employees.POST("/list", employeeHandler.List)
			employees.POST("/detail", employeeHandler.Detail)
			employees.POST("/update", employeeHandler.Update)
			employees.POST("/delete", employeeHandler.Delete)
			employees.POST("/transfer-ownership", employeeHandler.TransferOwnership)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.POST("/create", projectHandler.Create)
			projects.POST("/list", projectHandler.List)
			projects.POST("/detail", projectHandler.Detail)
			projects.POST("/add-members", projectHandler.AddMembers)
			projects.POST("/list-members", projectHandler.ListMembers)
			projects.POST("/add-flow", projectHandler.AddFlow)
			projects.POST("/list-flows", projectHandler.ListFlows)
			projects.POST("/update", projectHandler.Update)
			projects.POST("/delete", projectHandler.Delete)
		}

		// Work record routes (protected)
		records := api.Group("/work-records")
		records.Use(middleware.RequireAuth(tokens))
		{
			records.POST("/create", recordHandler.Create)
			records.POST("/list", recordHandler.List)
			records.POST("/stats", recordHandler.Stats)
			records.POST("/range", recordHandler.Range)
			records.POST("/update", recordHandler.Update)
			records.POST("/delete", recordHandler.Delete)
			records.POST("/batch", recordHandler.Batch)
		}

		// Invitation routes (protected)
		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth(tokens))
		{
			invitations.POST("/create", invitationHandler.Create)
			invitations.POST("/detail", invitationHandler.Detail)
			invitations.POST("/accept", invitationHandler.Accept)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
