package handlers

import (
	"todo_webapp/internal/domain"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Users domain.UserRepository
	Tasks domain.TaskRepository
	Auth  *service.AuthService

	// Events may be nil; task handlers then skip notifications.
	Events *ws.Hub
}

func NewHandler(users domain.UserRepository, tasks domain.TaskRepository, auth *service.AuthService, events *ws.Hub) *Handler {
	return &Handler{
		Users:  users,
		Tasks:  tasks,
		Auth:   auth,
		Events: events,
	}
}

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func (h *Handler) notify(userID int64, ev ws.Event) {
	if h.Events != nil {
		h.Events.Notify(userID, ev)
	}
}
