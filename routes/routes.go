package routes

import (
	"salonflow-backend/config"
	"salonflow-backend/controllers"
	"salonflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", utils.CheckLimit("clients"), controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", utils.CheckLimit("services"), controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.ListAppointments)
			appointments.POST("", controllers.CreateAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Finance routes
		finance := api.Group("/finance")
		{
			finance.GET("/summary", controllers.GetFinanceSummary)
			finance.GET("/flow", controllers.GetFinanceFlow)

			finance.GET("/categories", controllers.GetCategories)
			finance.POST("/categories", controllers.CreateCategory)

			finance.GET("/transactions", controllers.GetTransactions)
			finance.POST("/transactions", utils.CheckLimit("transactions"), controllers.CreateTransaction)
			finance.PUT("/transactions/:id", controllers.UpdateTransaction)
			finance.DELETE("/transactions/:id", controllers.DeleteTransaction)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("/hours", controllers.UpdateBusinessHours)
		}
	}

	return r
}
