package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"todolist_backend/internal/domain"
	"todolist_backend/internal/logger"
	"todolist_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type todoRequest struct {
	Title   string     `json:"title" binding:"required"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
	DueTo   *time.Time `json:"due_to"`
}

type fileResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type todoResponse struct {
	ID      uuid.UUID    `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content,omitempty"`
	Done    bool         `json:"done"`
	Added   *time.Time   `json:"added"`
	DueTo   *time.Time   `json:"due_to"`
	Tags    []string     `json:"tags"`
	File    fileResponse `json:"file"`
}

func newTodoResponse(it *domain.TodoItem) todoResponse {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return todoResponse{
		ID:      it.ID,
		Title:   it.Title,
		Content: it.Content,
		Done:    it.Done,
		Added:   domain.ToNullable(it.Added),
		DueTo:   domain.ToNullable(it.DueTo),
		Tags:    tags,
		File:    fileResponse{Path: it.File.Path, Size: it.File.Size},
	}
}

func newTodoListResponse(items []*domain.TodoItem) []todoResponse {
	res := make([]todoResponse, 0, len(items))
	for _, it := range items {
		res = append(res, newTodoResponse(it))
	}
	return res
}

// respondError translates the engine's error taxonomy into HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
	default:
		logger.Error("todo operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateTodo handles POST /todos.
func (h *Handler) CreateTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := service.CreateTodoInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if req.DueTo != nil {
		in.DueTo = *req.DueTo
	}

	it, err := h.Todos.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTodoResponse(it))
}

// GetTodo handles GET /todos/:id, owner-scoped.
func (h *Handler) GetTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	it, err := h.Todos.GetForOwner(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTodoResponse(it))
}

// ListTodos handles GET /todos: complete items first, then incomplete.
func (h *Handler) ListTodos(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	items, err := h.Todos.ListAll(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": newTodoListResponse(items)})
}

func (h *Handler) ListCompleteTodos(c *gin.Context) {
	h.listWith(c, h.Todos.ListComplete)
}

func (h *Handler) ListIncompleteTodos(c *gin.Context) {
	h.listWith(c, h.Todos.ListIncomplete)
}

func (h *Handler) ListRecentlyAdded(c *gin.Context) {
	h.listWith(c, h.Todos.ListRecentlyAdded)
}

func (h *Handler) ListDueSoon(c *gin.Context) {
	h.listWith(c, h.Todos.ListDueSoon)
}

// ListByTag handles GET /todos/bytag/:tag, scoped to the acting user so
// one user's tag search never surfaces another user's items.
func (h *Handler) ListByTag(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tag := c.Param("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tag"})
		return
	}

	items, err := h.Todos.ListByTagForOwner(c.Request.Context(), userID, tag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": newTodoListResponse(items)})
}

// ListByMonth handles GET /todos/month/:month (1-12).
func (h *Handler) ListByMonth(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	items, err := h.Todos.ListByMonth(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": newTodoListResponse(items)})
}

// UpdateTodo handles PUT /todos/:id: overwrites title, content and tags.
// Completion state is changed only through ToggleTodo.
func (h *Handler) UpdateTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.Todos.Update(c.Request.Context(), id, userID, service.UpdateTodoInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleTodo handles PATCH /todos/:id/toggle.
func (h *Handler) ToggleTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	toggled, err := h.Todos.ToggleDone(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !toggled {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTodo handles DELETE /todos/:id.
func (h *Handler) DeleteTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadFile handles POST /todos/:id/file. The task's directory is cleaned
// and the new file saved before the (path, size) pair is recorded, so an
// item never references bytes that are not on disk.
func (h *Handler) UploadFile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	// Resolve ownership before touching the disk so a non-owner holding
	// the id cannot wipe or replace the task's stored bytes.
	if _, err := h.Todos.GetForOwner(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or empty file"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	dir := id.String()
	if err := h.Files.CleanDirectory(dir); err != nil {
		logger.Error("clean upload directory failed", "todo_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file could not be saved"})
		return
	}

	path := dir + "/" + filepath.Base(fh.Filename)
	if err := h.Files.SaveFile(path, src); err != nil {
		logger.Error("save upload failed", "todo_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file could not be saved"})
		return
	}

	attached, err := h.Todos.AttachFile(c.Request.Context(), id, userID, path, fh.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	if !attached {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path, "size": fh.Size})
}

func (h *Handler) listWith(c *gin.Context, list func(ctx context.Context, owner int64) ([]*domain.TodoItem, error)) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	items, err := list(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": newTodoListResponse(items)})
}
