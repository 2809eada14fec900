package apierrors

import (
	"fmt"

	"taskmind/pkg/translator"

	"go.uber.org/zap"
)

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JsonErr is a failed Envelope together with its HTTP status.
type JsonErr struct {
	Status   int
	Envelope Envelope
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Status, e.Envelope.Error)
}

func Success(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func SuccessList(data any, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}

// CreateError builds a failed envelope with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{
		Status:   code,
		Envelope: Envelope{Success: false, Error: GetTransErrorMsg(msgKey, lang)},
	}
}

// WithDetails attaches err's text, for deployments that expose raw causes.
func (e JsonErr) WithDetails(err error) JsonErr {
	if err != nil {
		e.Envelope.Details = err.Error()
	}
	return e
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	msg, err := translator.Localize(msgKey, lang)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
