package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

type TaskRequest struct {
	Header      string `json:"header"`
	Description string `json:"description"`
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tasks, err := h.Tasks.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to list tasks", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task := &domain.Task{
		UserID:      userID,
		Header:      req.Header,
		Description: req.Description,
	}
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		logger.Error("failed to create task", "user_id", userID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create task"})
		return
	}

	h.notify(userID, ws.Event{Type: ws.EventTaskCreated, Task: task})
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task := &domain.Task{
		ID:          taskID,
		UserID:      userID,
		Header:      req.Header,
		Description: req.Description,
	}
	if err := h.Tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		logger.Error("failed to update task", "task_id", taskID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update task"})
		return
	}

	h.notify(userID, ws.Event{Type: ws.EventTaskUpdated, Task: task})
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		logger.Error("failed to delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	h.notify(userID, ws.Event{Type: ws.EventTaskDeleted, ID: taskID})
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
