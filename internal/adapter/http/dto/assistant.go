package dto

type SuggestTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

type SuggestRequest struct {
	Task    SuggestTaskPayload `json:"task"`
	Context string             `json:"context"`
}

type GenerateTasksRequest struct {
	Description    string `json:"description"`
	ProjectContext string `json:"projectContext"`
}

type TaskSummaryPayload struct {
	Title             string `json:"title"`
	Priority          string `json:"priority"`
	Status            string `json:"status"`
	EstimatedDuration *int   `json:"estimatedDuration"`
	DueDate           string `json:"dueDate"`
}

type AnalyzeWorkloadRequest struct {
	Tasks []TaskSummaryPayload `json:"tasks"`
}

type UsageItem struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type SuggestResponse struct {
	Suggestions string    `json:"suggestions"`
	Usage       UsageItem `json:"usage"`
}

type DraftTaskItem struct {
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	Priority          string   `json:"priority"`
	Category          *string  `json:"category,omitempty"`
	EstimatedDuration *int     `json:"estimatedDuration,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

type GenerateTasksResponse struct {
	Tasks []DraftTaskItem `json:"tasks"`
	Usage UsageItem       `json:"usage"`
}

type AnalyzeWorkloadResponse struct {
	Analysis  string    `json:"analysis"`
	TaskCount int       `json:"taskCount"`
	Usage     UsageItem `json:"usage"`
}
