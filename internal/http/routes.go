package http

import (
	"todolist_backend/internal/config"
	"todolist_backend/internal/http/handlers"
	"todolist_backend/internal/http/middleware"
	"todolist_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	files := storage.NewLocal(cfg.UploadDir)
	h := handlers.NewHandler(db, files)
	health := handlers.NewHealthHandler(db)

	// Health checks (no rate limiting)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth (tighter limit against credential stuffing)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	todos := v1.Group("/todos")
	todos.Use(middleware.JWT())
	{
		todos.GET("", h.ListTodos)
		todos.GET("/complete", h.ListCompleteTodos)
		todos.GET("/incomplete", h.ListIncompleteTodos)
		todos.GET("/recent", h.ListRecentlyAdded)
		todos.GET("/due-soon", h.ListDueSoon)
		todos.GET("/month/:month", h.ListByMonth)
		todos.GET("/bytag/:tag", h.ListByTag)
		todos.GET("/:id", h.GetTodo)
		todos.POST("", h.CreateTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.PATCH("/:id/toggle", h.ToggleTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.POST("/:id/file", h.UploadFile)
	}
}
