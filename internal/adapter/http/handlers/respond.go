package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskmind/internal/adapter/http/middleware"
	"taskmind/internal/core/domain"
	"taskmind/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidTaskID = errors.New("invalid task id")

// responder writes every envelope for a handler. exposeDetails is false in production.
type responder struct {
	exposeDetails bool
}

func (r responder) ok(c *gin.Context, status int, data any, msgKey string) {
	message := ""
	if msgKey != "" {
		message = apierrors.GetTransErrorMsg(msgKey, middleware.GetLang(c))
	}
	c.JSON(status, apierrors.Success(data, message))
}

func (r responder) fail(c *gin.Context, err error, fallbackKey string) {
	status, msgKey := classifyError(err, fallbackKey)
	jsonErr := apierrors.CreateError(status, msgKey, middleware.GetLang(c))
	if r.exposeDetails {
		jsonErr = jsonErr.WithDetails(err)
	}
	if jsonErr.Status >= http.StatusInternalServerError {
		zap.L().Error(fallbackKey,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(jsonErr.Status, jsonErr.Envelope)
}

// failKey reports a 400 with a specific message key instead of the generic one.
func (r responder) failKey(c *gin.Context, status int, msgKey string, err error) {
	jsonErr := apierrors.CreateError(status, msgKey, middleware.GetLang(c))
	if r.exposeDetails {
		jsonErr = jsonErr.WithDetails(err)
	}
	_ = c.Error(err)
	c.JSON(jsonErr.Status, jsonErr.Envelope)
}

func parseTaskID(c *gin.Context) (uint64, error) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return 0, errInvalidTaskID
	}
	return taskID, nil
}

// classifyError returns the HTTP status and message key for err's kind.
// fallbackKey names the operation for internal failures.
func classifyError(err error, fallbackKey string) (int, string) {
	switch domain.KindOf(err) {
	case domain.ErrValidation:
		return http.StatusBadRequest, apierrors.MsgValidationFailed
	case domain.ErrNotFound:
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case domain.ErrConfiguration:
		return http.StatusInternalServerError, apierrors.MsgAINotConfigured
	case domain.ErrUpstreamAuth:
		return http.StatusUnauthorized, apierrors.MsgAIInvalidKey
	case domain.ErrUpstreamQuota:
		return http.StatusTooManyRequests, apierrors.MsgAIQuotaExceeded
	case domain.ErrUpstreamParse:
		return http.StatusInternalServerError, apierrors.MsgAIInvalidResponse
	default:
		if fallbackKey == "" {
			fallbackKey = apierrors.MsgInternalError
		}
		return http.StatusInternalServerError, fallbackKey
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
