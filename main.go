package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/config"
	"github.com/bonaparte-uniformes/bonaparte-api/controllers"
	"github.com/bonaparte-uniformes/bonaparte-api/middleware"
	"github.com/bonaparte-uniformes/bonaparte-api/models"
	"github.com/bonaparte-uniformes/bonaparte-api/repository"
	"github.com/bonaparte-uniformes/bonaparte-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Pedido{}, &models.Imagen{}, &models.Usuario{}); err != nil {
		zap.S().Fatalw("failed to migrate database", "error", err)
	}
	zap.S().Info("database migration completed")

	repository.Init(repository.NewGormStore(db))

	storage, err := newStorage(cfg)
	if err != nil {
		zap.S().Fatalw("failed to initialize storage", "error", err)
	}
	services.InitStorage(storage)

	sessions := services.InitSessionStore(services.NewMemorySessionStore(cfg.SessionTTL))
	defer sessions.Clear()

	store := repository.GetStore()
	services.InitAuthService(services.NewAuthService(store, sessions, services.PlaintextComparer{}))
	services.InitPedidoService(services.NewPedidoService(store, storage, cfg.FolioPrefix))
	services.InitImagenService(services.NewImagenService(store, storage, cfg.MaxUploadBytes()))

	router := buildRouter(cfg)

	addr := ":" + cfg.Port
	zap.S().Infow("server listening", "addr", addr, "storage", cfg.StorageBackend)
	if err := router.Run(addr); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}

// newLogger builds the process logger: structured JSON in production,
// console output everywhere else.
func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

// newStorage selects the file-storage backend from configuration
func newStorage(cfg *config.Config) (services.FileStorage, error) {
	if cfg.StorageBackend == "s3" {
		return services.NewS3Storage(cfg)
	}
	return services.NewLocalStorage(cfg.UploadDir), nil
}

// buildRouter wires all HTTP routes
func buildRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsTest() {
		gin.SetMode(gin.TestMode)
	}
	router := gin.Default()
	router.Use(cors.Default())
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.POST("/login", controllers.Login)

		// Files saved by the local storage backend are served directly;
		// the S3 backend hands out bucket URLs.
		if cfg.StorageBackend == "local" {
			api.GET("/uploads/*filepath", controllers.GetUploadedImage)
		}

		authed := api.Group("", middleware.RequireAuth())
		{
			authed.GET("/pedidos", controllers.ListPedidos)
			authed.POST("/pedidos", controllers.CreatePedido)
			authed.PUT("/pedidos/:id", controllers.UpdatePedido)
			authed.DELETE("/pedidos/:id", controllers.DeletePedido)
			authed.POST("/pedidos/:id/imagen", controllers.UploadImagen)
			authed.GET("/pedidos/:id/imagenes", controllers.ListImagenes)

			admin := authed.Group("", middleware.RequireAdmin())
			{
				admin.GET("/users", controllers.ListUsers)
				admin.POST("/users", controllers.CreateUser)
				admin.DELETE("/users/:id", controllers.DeleteUser)
				admin.GET("/respaldo", controllers.Respaldo)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Bonaparte API is running",
	})
}
