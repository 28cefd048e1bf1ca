package http

import (
	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.AllowedEmailDomain, cfg.TokenTTL, cfg.BcryptCost)

	hub := ws.NewHub()
	h := handlers.NewHandler(users, tasks, auth, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRL := middleware.RateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow)
	authRL := middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Auth endpoints get the tighter window
	r.POST("/register", authRL, h.Register)
	r.POST("/login", authRL, h.Login)

	requireAuth := middleware.RequireAuth(auth)

	r.GET("/me", apiRL, requireAuth, h.Me)

	// Task CRUD. Order matters: the token check must run before anything
	// that reads claims.
	r.GET("/tasks", apiRL, requireAuth, h.ListTasks)
	r.POST("/tasks", apiRL, requireAuth,
		middleware.RequireJSON(),
		middleware.TaskLength(),
		middleware.RequireEmailDomain(cfg.AllowedEmailDomain),
		h.CreateTask)
	r.PUT("/tasks/:taskId", apiRL, requireAuth, middleware.TaskLength(), h.UpdateTask)
	r.DELETE("/tasks/:taskId", apiRL, requireAuth, h.DeleteTask)

	// Task event stream
	r.GET("/ws", ws.HandleWS(hub, auth, cfg.AllowedOrigin))

	// Frontend static files
	r.StaticFS("/assets", gin.Dir("web", false))
	r.NoRoute(func(c *gin.Context) {
		c.File("web/index.html")
	})
}
