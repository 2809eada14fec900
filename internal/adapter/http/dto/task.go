package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"taskmind/internal/core/domain"
)

type TaskItem struct {
	ID                uint64   `json:"id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	Priority          string   `json:"priority"`
	Status            string   `json:"status"`
	Category          *string  `json:"category,omitempty"`
	DueDate           *string  `json:"dueDate,omitempty"`
	EstimatedDuration *int     `json:"estimatedDuration,omitempty"`
	Tags              []string `json:"tags"`
	AISuggestions     *string  `json:"aiSuggestions,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// ListTasksQuery is validated by the query engine, not by binding tags.
type ListTasksQuery struct {
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Category  string `form:"category"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

type CreateTaskRequest struct {
	Title             string  `json:"title" binding:"required,max=100"`
	Description       *string `json:"description" binding:"omitempty,max=500"`
	Priority          *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status            *string `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Category          *string `json:"category" binding:"omitempty,max=50"`
	DueDate           *string `json:"dueDate"`
	EstimatedDuration *int    `json:"estimatedDuration" binding:"omitempty,gte=1"`
	Tags              TagList `json:"tags"`
	AISuggestions     *string `json:"aiSuggestions"`
}

type UpdateTaskRequest struct {
	Title             *string `json:"title" binding:"omitempty,max=100"`
	Description       *string `json:"description" binding:"omitempty,max=500"`
	Priority          *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status            *string `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Category          *string `json:"category" binding:"omitempty,max=50"`
	DueDate           *string `json:"dueDate"`
	EstimatedDuration *int    `json:"estimatedDuration" binding:"omitempty,gte=1"`
	Tags              TagList `json:"tags"`
	AISuggestions     *string `json:"aiSuggestions"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed cancelled"`
}

// TagList accepts either a JSON array of strings or a comma-separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*t = domain.SplitTags(value)
		return nil
	}

	var values []string
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return errors.New("tags must be a string or an array of strings")
	}
	*t = domain.NormalizeTags(values)
	return nil
}
