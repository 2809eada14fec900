package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCategoryLength    = 50
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists statuses in lifecycle order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists priorities from least to most pressing.
var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

func (p TaskPriority) Valid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

type Task struct {
	ID                uint64
	Title             string
	Description       *string
	Priority          TaskPriority
	Status            TaskStatus
	Category          *string
	DueDate           *time.Time
	EstimatedDuration *int
	Tags              []string
	AISuggestions     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateTaskInput struct {
	Title             string
	Description       *string
	Priority          TaskPriority
	Status            TaskStatus
	Category          *string
	DueDate           *time.Time
	EstimatedDuration *int
	Tags              []string
	AISuggestions     *string
}

// UpdateTaskInput carries a partial update. A nil pointer leaves the field
// untouched unless the matching *Set flag marks an explicit clear.
type UpdateTaskInput struct {
	Title                *string
	Description          *string
	DescriptionSet       bool
	Priority             *TaskPriority
	Status               *TaskStatus
	Category             *string
	CategorySet          bool
	DueDate              *time.Time
	DueDateSet           bool
	EstimatedDuration    *int
	EstimatedDurationSet bool
	Tags                 []string
	TagsSet              bool
	AISuggestions        *string
	AISuggestionsSet     bool
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Priority == nil &&
		in.Status == nil &&
		!in.CategorySet &&
		!in.DueDateSet &&
		!in.EstimatedDurationSet &&
		!in.TagsSet &&
		!in.AISuggestionsSet
}

// DraftTask is an AI-proposed task that has not been persisted.
type DraftTask struct {
	Title             string
	Description       *string
	Priority          TaskPriority
	Category          *string
	EstimatedDuration *int
	Tags              []string
}

func (in CreateTaskInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := validateOptionalLength("description", in.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateOptionalLength("category", in.Category, MaxCategoryLength); err != nil {
		return err
	}
	if !in.Priority.Valid() {
		return NewValidationError("invalid priority %q", in.Priority)
	}
	if !in.Status.Valid() {
		return NewValidationError("invalid status %q", in.Status)
	}
	if in.EstimatedDuration != nil && *in.EstimatedDuration < 1 {
		return NewValidationError("estimatedDuration must be at least 1 minute")
	}
	return nil
}

func (in UpdateTaskInput) Validate() error {
	if in.Empty() {
		return NewValidationError("no fields to update")
	}
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return err
		}
	}
	if err := validateOptionalLength("description", in.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateOptionalLength("category", in.Category, MaxCategoryLength); err != nil {
		return err
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return NewValidationError("invalid priority %q", *in.Priority)
	}
	if in.Status != nil && !in.Status.Valid() {
		return NewValidationError("invalid status %q", *in.Status)
	}
	if in.EstimatedDuration != nil && *in.EstimatedDuration < 1 {
		return NewValidationError("estimatedDuration must be at least 1 minute")
	}
	return nil
}

// NormalizeTags trims, drops empties and deduplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// SplitTags parses a comma-separated tag list such as "a, b, b".
func SplitTags(value string) []string {
	return NormalizeTags(strings.Split(value, ","))
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title cannot exceed %d characters", MaxTitleLength)
	}
	return nil
}

func validateOptionalLength(field string, value *string, limit int) error {
	if value != nil && utf8.RuneCountInString(*value) > limit {
		return NewValidationError("%s cannot exceed %d characters", field, limit)
	}
	return nil
}
