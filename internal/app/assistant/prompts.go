package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"taskmind/internal/core/domain"
)

const (
	suggestSystemPrompt  = "You are a helpful productivity assistant that provides practical task management advice."
	generateSystemPrompt = "You are a project management expert who breaks down goals into actionable tasks. Respond only with valid JSON."
	analyzeSystemPrompt  = "You are a productivity consultant who analyzes workloads and provides optimization recommendations."
)

const (
	placeholderDescription = "No description provided"
	placeholderPriority    = "No priority set"
	placeholderCategory    = "No category provided"
	placeholderDueDate     = "No due date set"
	placeholderContext     = "No additional context provided"
)

const suggestPromptTemplate = `As a productivity expert, analyze this task and provide helpful suggestions:

Task Title: %s
Description: %s
Priority: %s
Category: %s
Due Date: %s
Additional Context: %s

Please provide:
1. Task breakdown suggestions (if the task is complex)
2. Estimated time to complete
3. Priority recommendation
4. Potential challenges and solutions
5. Related tasks or dependencies to consider

Keep your response concise and actionable.`

const generatePromptTemplate = `Based on this project description, generate a list of specific, actionable tasks:

Project/Goal: %s
Context: %s

Generate 5-8 tasks that would help accomplish this goal. For each task, provide:
- title: concise, action-oriented string (required, at most 100 characters)
- description: brief string (at most 500 characters)
- priority: exactly one of "low", "medium", "high", "urgent"
- category: short string (at most 50 characters)
- estimatedDuration: a whole number of minutes (a JSON number, not a string)

Format your response as a JSON array of tasks with these properties:
[
  {
    "title": "Task title",
    "description": "Brief description",
    "priority": "medium",
    "category": "category",
    "estimatedDuration": 60
  }
]

Only respond with the JSON array, no additional text.`

const analyzePromptTemplate = `Analyze this task workload and provide recommendations:

Tasks: %s

Please analyze:
1. Overall workload assessment
2. Priority distribution
3. Time management suggestions
4. Potential bottlenecks or overcommitments
5. Recommendations for task scheduling and organization

Provide a concise analysis with actionable recommendations.`

// Prompt is a system instruction plus the user turn sent to the provider.
type Prompt struct {
	System string
	User   string
}

func BuildSuggestPrompt(input domain.SuggestInput) (Prompt, error) {
	if strings.TrimSpace(input.Task.Title) == "" {
		return Prompt{}, domain.NewValidationError("task title is required")
	}

	user := fmt.Sprintf(suggestPromptTemplate,
		input.Task.Title,
		orPlaceholder(input.Task.Description, placeholderDescription),
		orPlaceholder(input.Task.Priority, placeholderPriority),
		orPlaceholder(input.Task.Category, placeholderCategory),
		orPlaceholder(input.Task.DueDate, placeholderDueDate),
		orPlaceholder(input.Context, placeholderContext),
	)
	return Prompt{System: suggestSystemPrompt, User: user}, nil
}

func BuildGeneratePrompt(input domain.GenerateInput) (Prompt, error) {
	if strings.TrimSpace(input.Description) == "" {
		return Prompt{}, domain.NewValidationError("description is required")
	}

	user := fmt.Sprintf(generatePromptTemplate,
		input.Description,
		orPlaceholder(input.ProjectContext, placeholderContext),
	)
	return Prompt{System: generateSystemPrompt, User: user}, nil
}

func BuildAnalyzePrompt(tasks []domain.TaskSummary) (Prompt, error) {
	if len(tasks) == 0 {
		return Prompt{}, domain.NewValidationError("at least one task is required")
	}

	summary, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return Prompt{}, domain.NewInternalError("encode task summary", err)
	}

	return Prompt{System: analyzeSystemPrompt, User: fmt.Sprintf(analyzePromptTemplate, summary)}, nil
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
