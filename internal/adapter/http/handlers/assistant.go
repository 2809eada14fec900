package handlers

import (
	"net/http"

	"taskmind/internal/adapter/http/dto"
	"taskmind/internal/adapter/http/mapper"
	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
	"taskmind/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AssistantHandler struct {
	assistant ports.AssistantService
	responder
}

func NewAssistantHandler(assistant ports.AssistantService, exposeDetails bool) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		responder: responder{exposeDetails: exposeDetails},
	}
}

func (h *AssistantHandler) Suggest(c *gin.Context) {
	var req dto.SuggestRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidAIPayload, err)
		return
	}

	result, err := h.assistant.Suggest(c.Request.Context(), mapper.ToSuggestInput(req))
	if err != nil {
		h.fail(c, err, apierrors.MsgFailAISuggest)
		return
	}

	h.ok(c, http.StatusOK, dto.SuggestResponse{
		Suggestions: result.SuggestionText,
		Usage:       mapper.ToUsageItem(result.Usage),
	}, "")
}

func (h *AssistantHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidAIPayload, err)
		return
	}

	result, err := h.assistant.GenerateTasks(c.Request.Context(), domain.GenerateInput{
		Description:    req.Description,
		ProjectContext: req.ProjectContext,
	})
	if err != nil {
		h.fail(c, err, apierrors.MsgFailAIGenerate)
		return
	}

	h.ok(c, http.StatusOK, dto.GenerateTasksResponse{
		Tasks: mapper.ToDraftTaskItems(result.DraftTasks),
		Usage: mapper.ToUsageItem(result.Usage),
	}, "")
}

func (h *AssistantHandler) AnalyzeWorkload(c *gin.Context) {
	var req dto.AnalyzeWorkloadRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidAIPayload, err)
		return
	}

	result, err := h.assistant.AnalyzeWorkload(c.Request.Context(), mapper.ToTaskSummaries(req.Tasks))
	if err != nil {
		h.fail(c, err, apierrors.MsgFailAIAnalyze)
		return
	}

	h.ok(c, http.StatusOK, dto.AnalyzeWorkloadResponse{
		Analysis:  result.AnalysisText,
		TaskCount: result.TaskCount,
		Usage:     mapper.ToUsageItem(result.Usage),
	}, "")
}
