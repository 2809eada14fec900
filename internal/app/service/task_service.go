package service

import (
	"context"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	queryEngine    *TaskQueryEngine
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		queryEngine:    NewTaskQueryEngine(taskRepository),
	}
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.FilterSpec) ([]domain.Task, error) {
	return s.queryEngine.List(ctx, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}
	input.Tags = domain.NormalizeTags(input.Tags)

	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.CreateTask(ctx, input)
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.TagsSet {
		input.Tags = domain.NormalizeTags(input.Tags)
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.UpdateTask(ctx, id, input)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uint64, status domain.TaskStatus) (domain.Task, error) {
	if !status.Valid() {
		return domain.Task{}, domain.NewValidationError("invalid status %q", status)
	}
	return s.taskRepository.UpdateTask(ctx, id, domain.UpdateTaskInput{Status: &status})
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	return s.taskRepository.DeleteTask(ctx, id)
}

var _ ports.TaskService = (*TaskService)(nil)
