package handlers

import (
	"net/http"

	"taskmind/internal/adapter/http/dto"
	"taskmind/internal/adapter/http/mapper"
	"taskmind/internal/adapter/http/validation"
	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
	"taskmind/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type TaskHandler struct {
	taskService ports.TaskService
	responder
}

func NewTaskHandler(taskService ports.TaskService, exposeDetails bool) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		responder:   responder{exposeDetails: exposeDetails},
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskFilter, err)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), domain.FilterSpec{
		Status:    query.Status,
		Priority:  query.Priority,
		Category:  query.Category,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		if isValidation(err) {
			h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskFilter, err)
			return
		}
		h.fail(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, apierrors.SuccessList(mapper.ToTaskItems(tasks), len(tasks)))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := parseTaskID(c)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, err)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.fail(c, err, apierrors.MsgFailGetTask)
		return
	}

	h.ok(c, http.StatusOK, mapper.ToTaskItem(task), "")
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	var req dto.CreateTaskRequest
	raw, err := validation.DecodeTaskPayload(body, &req)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, apierrors.MsgFailCreateTask)
		return
	}

	h.ok(c, http.StatusCreated, mapper.ToTaskItem(task), apierrors.MsgTaskCreated)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := parseTaskID(c)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := validation.DecodeTaskPayload(body, &req)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		h.fail(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	h.ok(c, http.StatusOK, mapper.ToTaskItem(task), apierrors.MsgTaskUpdated)
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, err := parseTaskID(c)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, err)
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidStatus, err)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), taskID, domain.TaskStatus(req.Status))
	if err != nil {
		if isValidation(err) {
			h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidStatus, err)
			return
		}
		h.fail(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	h.ok(c, http.StatusOK, mapper.ToTaskItem(task), apierrors.MsgTaskStatusUpdated)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := parseTaskID(c)
	if err != nil {
		h.failKey(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, err)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.fail(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	h.ok(c, http.StatusOK, nil, apierrors.MsgTaskDeleted)
}
