package mapper

import (
	"time"

	"taskmind/internal/adapter/http/dto"
	"taskmind/internal/core/domain"
)

const dateLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Priority:          string(task.Priority),
		Status:            string(task.Status),
		Category:          task.Category,
		EstimatedDuration: task.EstimatedDuration,
		AISuggestions:     task.AISuggestions,
		Tags:              task.Tags,
		CreatedAt:         task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         task.UpdatedAt.Format(time.RFC3339),
	}

	if item.Tags == nil {
		item.Tags = []string{}
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(dateLayout)
		item.DueDate = &value
	}

	return item
}

func ToDraftTaskItems(drafts []domain.DraftTask) []dto.DraftTaskItem {
	items := make([]dto.DraftTaskItem, 0, len(drafts))
	for _, draft := range drafts {
		items = append(items, dto.DraftTaskItem{
			Title:             draft.Title,
			Description:       draft.Description,
			Priority:          string(draft.Priority),
			Category:          draft.Category,
			EstimatedDuration: draft.EstimatedDuration,
			Tags:              draft.Tags,
		})
	}
	return items
}

func ToUsageItem(usage domain.Usage) dto.UsageItem {
	return dto.UsageItem{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}

func ToSuggestInput(req dto.SuggestRequest) domain.SuggestInput {
	return domain.SuggestInput{
		Task: domain.SuggestTask{
			Title:       req.Task.Title,
			Description: req.Task.Description,
			Priority:    req.Task.Priority,
			Category:    req.Task.Category,
			DueDate:     req.Task.DueDate,
		},
		Context: req.Context,
	}
}

func ToTaskSummaries(payloads []dto.TaskSummaryPayload) []domain.TaskSummary {
	summaries := make([]domain.TaskSummary, 0, len(payloads))
	for _, payload := range payloads {
		summaries = append(summaries, domain.TaskSummary{
			Title:             payload.Title,
			Priority:          payload.Priority,
			Status:            payload.Status,
			EstimatedDuration: payload.EstimatedDuration,
			DueDate:           payload.DueDate,
		})
	}
	return summaries
}
