package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"

	"taskmind/internal/adapter/http/dto"
	"taskmind/internal/core/domain"
)

var ErrInvalidTaskPayload = fmt.Errorf("invalid task payload: %w", domain.ErrValidation)

// DecodeTaskPayload unmarshals body into req, runs its binding tags, and also
// returns the raw field map so explicit nulls can be told apart from absent fields.
func DecodeTaskPayload(body []byte, req any) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidTaskPayload)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaskPayload, err)
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaskPayload, err)
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaskPayload, err)
	}
	return raw, nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	for _, field := range []string{"title", "priority", "status"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, fmt.Errorf("%w: %s cannot be null", ErrInvalidTaskPayload, field)
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, fmt.Errorf("%w: title is required", ErrInvalidTaskPayload)
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != nil {
		priority = domain.TaskPriority(*req.Priority)
	}

	status := domain.TaskStatusPending
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:             title,
		Description:       trimmed(req.Description),
		Priority:          priority,
		Status:            status,
		Category:          trimmed(req.Category),
		DueDate:           dueDate,
		EstimatedDuration: req.EstimatedDuration,
		Tags:              []string(req.Tags),
		AISuggestions:     req.AISuggestions,
	}, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, fmt.Errorf("%w: no updatable fields", ErrInvalidTaskPayload)
	}

	for _, field := range []string{"title", "priority", "status"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, fmt.Errorf("%w: %s cannot be null", ErrInvalidTaskPayload, field)
		}
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, fmt.Errorf("%w: title is required", ErrInvalidTaskPayload)
		}
		title = &value
	}

	var priority *domain.TaskPriority
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		priority = &value
	}

	var status *domain.TaskStatus
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		status = &value
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	return domain.UpdateTaskInput{
		Title:                title,
		Description:          trimmed(req.Description),
		DescriptionSet:       hasJSONField(raw, "description"),
		Priority:             priority,
		Status:               status,
		Category:             trimmed(req.Category),
		CategorySet:          hasJSONField(raw, "category"),
		DueDate:              dueDate,
		DueDateSet:           hasJSONField(raw, "dueDate"),
		EstimatedDuration:    req.EstimatedDuration,
		EstimatedDurationSet: hasJSONField(raw, "estimatedDuration"),
		Tags:                 []string(req.Tags),
		TagsSet:              hasJSONField(raw, "tags"),
		AISuggestions:        req.AISuggestions,
		AISuggestionsSet:     hasJSONField(raw, "aiSuggestions"),
	}, nil
}

// parseDueDate accepts a calendar date or an RFC3339 timestamp.
func parseDueDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	text := strings.TrimSpace(*value)

	if parsed, err := time.Parse("2006-01-02", text); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate %q", ErrInvalidTaskPayload, text)
	}
	y, m, d := parsed.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	result := strings.TrimSpace(*value)
	return &result
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range []string{
		"title",
		"description",
		"priority",
		"status",
		"category",
		"dueDate",
		"estimatedDuration",
		"tags",
		"aiSuggestions",
	} {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
