// Package router builds the Echo instance: the middleware chain, the
// system routes and the task and user routes.
package router

import (
	"net/http"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/handler"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/middleware"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires the middleware chain and every route. RequestID runs
// first so tracing and logging both see the id.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	requireKey := middlewares.Auth.RequireFunctionKey()
	registerTaskRoutes(router.Group("/tasks", requireKey), h.Tasks)
	registerUserRoutes(router.Group("/users", requireKey), h.Users)

	return router
}

func registerTaskRoutes(tasks *echo.Group, h *handler.TaskHandler) {
	tasks.POST("/add", handler.Handle(h.Handler, h.AddTask, http.StatusCreated))
	tasks.GET("/user/:userId", handler.Handle(h.Handler, h.ListTasksByUser, http.StatusOK))
	tasks.PUT("/complete", handler.Handle(h.Handler, h.SetTaskCompleted, http.StatusOK))
	tasks.DELETE("/delete/:taskId", handler.Handle(h.Handler, h.DeleteTask, http.StatusOK))
}

func registerUserRoutes(users *echo.Group, h *handler.UserHandler) {
	users.POST("/add", handler.Handle(h.Handler, h.AddUser, http.StatusCreated))
	users.GET("/exists", handler.Handle(h.Handler, h.UserExists, http.StatusOK))
	users.POST("/authenticated", handler.Handle(h.Handler, h.Authenticate, http.StatusOK))
}
