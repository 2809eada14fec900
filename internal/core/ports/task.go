package ports

import (
	"context"

	"taskmind/internal/core/domain"
)

// TaskRepository is the TaskStore: durable task records with per-record atomicity.
type TaskRepository interface {
	FindTasks(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}

type TaskService interface {
	ListTasks(ctx context.Context, filter domain.FilterSpec) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id uint64, status domain.TaskStatus) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
}
