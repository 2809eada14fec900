package service

import (
	"context"
	"strings"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

// TaskQueryEngine turns a FilterSpec into a store query.
type TaskQueryEngine struct {
	taskRepository ports.TaskRepository
}

func NewTaskQueryEngine(taskRepository ports.TaskRepository) *TaskQueryEngine {
	return &TaskQueryEngine{taskRepository: taskRepository}
}

func (e *TaskQueryEngine) List(ctx context.Context, filter domain.FilterSpec) ([]domain.Task, error) {
	query, err := BuildTaskQuery(filter)
	if err != nil {
		return nil, err
	}
	return e.taskRepository.FindTasks(ctx, query)
}

// BuildTaskQuery validates filter and applies the createdAt/desc defaults.
func BuildTaskQuery(filter domain.FilterSpec) (domain.TaskQuery, error) {
	query := domain.TaskQuery{
		SortBy:    domain.SortByCreatedAt,
		SortOrder: domain.SortDesc,
	}

	if value := strings.TrimSpace(filter.Status); value != "" {
		status := domain.TaskStatus(value)
		if !status.Valid() {
			return domain.TaskQuery{}, domain.NewValidationError("invalid status filter %q", value)
		}
		query.Status = &status
	}

	if value := strings.TrimSpace(filter.Priority); value != "" {
		priority := domain.TaskPriority(value)
		if !priority.Valid() {
			return domain.TaskQuery{}, domain.NewValidationError("invalid priority filter %q", value)
		}
		query.Priority = &priority
	}

	if value := strings.TrimSpace(filter.Category); value != "" {
		query.CategoryContains = &value
	}

	if value := strings.TrimSpace(filter.SortBy); value != "" {
		field, ok := parseSortField(value)
		if !ok {
			return domain.TaskQuery{}, domain.NewValidationError("unsupported sortBy %q", value)
		}
		query.SortBy = field
	}

	switch order := strings.ToLower(strings.TrimSpace(filter.SortOrder)); order {
	case "":
	case string(domain.SortAsc), string(domain.SortDesc):
		query.SortOrder = domain.SortOrder(order)
	default:
		return domain.TaskQuery{}, domain.NewValidationError("unsupported sortOrder %q", filter.SortOrder)
	}

	return query, nil
}

func parseSortField(value string) (domain.SortField, bool) {
	for _, field := range domain.SortFields {
		if string(field) == value {
			return field, true
		}
	}
	return "", false
}
