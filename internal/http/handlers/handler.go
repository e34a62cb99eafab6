package handlers

import (
	"todolist_backend/internal/clock"
	"todolist_backend/internal/repository"
	"todolist_backend/internal/service"
	"todolist_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Todos *service.TodoService
	Auth  *service.AuthService
	Files storage.FileStorage
}

func NewHandler(db *pgxpool.Pool, files storage.FileStorage) *Handler {
	return &Handler{
		Todos: service.NewTodoService(repository.NewTodoRepository(db), clock.System{}),
		Auth:  service.NewAuthService(repository.NewUserRepository(db)),
		Files: files,
	}
}

// getUserID pulls the acting user's id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
