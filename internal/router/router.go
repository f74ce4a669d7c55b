package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/kaamsetu/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	User   *apiHandler.UserHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Public browse routes
	r.GET("/api/v1/tasks", handlers.Task.ListTasks)
	r.GET("/api/v1/tasks/user/{userId}", handlers.Task.ListTasksByUser)
	r.GET("/api/v1/tasks/applied/{userId}", handlers.Task.ListAppliedTasks)
	r.GET("/api/v1/tasks/{id}", handlers.Task.GetTask)
	r.GET("/api/v1/users/{id}", handlers.User.GetUser)

	// Lifecycle routes (owner or applicant actions)
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/{taskId}/apply", authMiddleware(handlers.Task.ApplyForTask))
	r.PUT("/api/v1/tasks/{taskId}/applications/{applicationId}/accept", authMiddleware(handlers.Task.AcceptApplication))
	r.PUT("/api/v1/tasks/{taskId}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.POST("/api/v1/tasks/{taskId}/rating", authMiddleware(handlers.Task.RateTask))

	return r
}
