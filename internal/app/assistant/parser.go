package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"taskmind/internal/core/domain"
)

// ParseText accepts free-form prose from suggest and analyze calls.
func ParseText(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &domain.ParseError{Index: -1, Reason: "provider returned an empty response"}
	}
	return raw, nil
}

// ParseDraftTasks validates a generate response. The batch is all-or-nothing:
// the first invalid element fails the whole call.
func ParseDraftTasks(raw string) ([]domain.DraftTask, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, &domain.ParseError{Index: -1, Reason: "provider returned an empty response"}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(body), &elements); err != nil {
		return nil, &domain.ParseError{Index: -1, Reason: "response is not a JSON array", Err: err}
	}
	if len(elements) == 0 {
		return nil, &domain.ParseError{Index: -1, Reason: "response contains no tasks"}
	}

	drafts := make([]domain.DraftTask, 0, len(elements))
	for i, element := range elements {
		draft, reason := parseDraftTask(element)
		if reason != "" {
			return nil, &domain.ParseError{Index: i, Reason: reason}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func parseDraftTask(element json.RawMessage) (domain.DraftTask, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return domain.DraftTask{}, "element is not a JSON object"
	}

	var draft domain.DraftTask

	title, present, ok := stringField(fields, "title")
	switch {
	case !present:
		return domain.DraftTask{}, "title is required"
	case !ok:
		return domain.DraftTask{}, "title must be a string"
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.DraftTask{}, "title is empty"
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.DraftTask{}, fmt.Sprintf("title exceeds %d characters", domain.MaxTitleLength)
	}
	draft.Title = title

	draft.Priority = domain.TaskPriorityMedium
	if value, present, ok := stringField(fields, "priority"); present {
		if !ok {
			return domain.DraftTask{}, "priority must be a string"
		}
		priority := domain.TaskPriority(value)
		if !priority.Valid() {
			return domain.DraftTask{}, fmt.Sprintf("invalid priority %q", value)
		}
		draft.Priority = priority
	}

	if value, present, ok := stringField(fields, "description"); present {
		if !ok {
			return domain.DraftTask{}, "description must be a string"
		}
		if utf8.RuneCountInString(value) > domain.MaxDescriptionLength {
			return domain.DraftTask{}, fmt.Sprintf("description exceeds %d characters", domain.MaxDescriptionLength)
		}
		draft.Description = &value
	}

	if value, present, ok := stringField(fields, "category"); present {
		if !ok {
			return domain.DraftTask{}, "category must be a string"
		}
		if utf8.RuneCountInString(value) > domain.MaxCategoryLength {
			return domain.DraftTask{}, fmt.Sprintf("category exceeds %d characters", domain.MaxCategoryLength)
		}
		draft.Category = &value
	}

	if raw, present := fields["estimatedDuration"]; present && !isNull(raw) {
		var minutes float64
		if err := json.Unmarshal(raw, &minutes); err != nil {
			return domain.DraftTask{}, "estimatedDuration must be a number"
		}
		if minutes < 0 {
			return domain.DraftTask{}, "estimatedDuration must not be negative"
		}
		if minutes > math.MaxInt32 {
			return domain.DraftTask{}, "estimatedDuration is too large"
		}
		// Drafts carry whole minutes; fractional estimates round to the nearest one.
		value := int(math.Round(minutes))
		draft.EstimatedDuration = &value
	}

	if raw, present := fields["tags"]; present && !isNull(raw) {
		var tags []string
		if err := json.Unmarshal(raw, &tags); err != nil {
			return domain.DraftTask{}, "tags must be an array of strings"
		}
		draft.Tags = domain.NormalizeTags(tags)
	}

	return draft, ""
}

// stringField reports whether key is present (and not null) and whether it holds a string.
func stringField(fields map[string]json.RawMessage, key string) (value string, present bool, ok bool) {
	raw, exists := fields[key]
	if !exists || isNull(raw) {
		return "", false, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", true, false
	}
	return value, true, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func stripCodeFence(raw string) string {
	body := strings.TrimSpace(raw)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	// The opening fence line may carry any language tag (json, JSON, javascript).
	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		body = body[newline+1:]
	} else {
		body = strings.TrimPrefix(body, "```")
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
