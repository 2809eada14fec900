package http

import (
	"taskmind/internal/adapter/http/handlers"
	"taskmind/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Tasks     *handlers.TaskHandler
	Assistant *handlers.AssistantHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/tasks", h.Tasks.ListTasks)
		api.POST("/tasks", h.Tasks.CreateTask)
		api.GET("/tasks/:id", h.Tasks.GetTask)
		api.PUT("/tasks/:id", h.Tasks.UpdateTask)
		api.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateTaskStatus)

		api.POST("/ai/suggest", h.Assistant.Suggest)
		api.POST("/ai/generate-tasks", h.Assistant.GenerateTasks)
		api.POST("/ai/analyze-workload", h.Assistant.AnalyzeWorkload)
	}
}

func RegisterMetrics(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
