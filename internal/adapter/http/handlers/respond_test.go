package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskmind/internal/core/domain"
	"taskmind/pkg/apierrors"
)

func TestClassifyError_MapsEveryKind(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msgKey string
	}{
		{"validation", domain.NewValidationError("bad"), http.StatusBadRequest, apierrors.MsgValidationFailed},
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
		{"configuration", domain.ErrProviderNotConfigured, http.StatusInternalServerError, apierrors.MsgAINotConfigured},
		{"upstream auth", &domain.Error{Kind: domain.ErrUpstreamAuth}, http.StatusUnauthorized, apierrors.MsgAIInvalidKey},
		{"upstream quota", &domain.Error{Kind: domain.ErrUpstreamQuota}, http.StatusTooManyRequests, apierrors.MsgAIQuotaExceeded},
		{"upstream parse", &domain.ParseError{Index: 2}, http.StatusInternalServerError, apierrors.MsgAIInvalidResponse},
		{"internal", errors.New("db is down"), http.StatusInternalServerError, apierrors.MsgFailListTask},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msgKey := classifyError(tc.err, apierrors.MsgFailListTask)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msgKey, msgKey)
		})
	}
}

func TestClassifyError_DefaultsToGenericKey(t *testing.T) {
	status, msgKey := classifyError(errors.New("boom"), "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apierrors.MsgInternalError, msgKey)
}
