package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskFilter  = "invalidTaskFilter"
	MsgInvalidStatus      = "invalidStatus"
	MsgInvalidAIPayload   = "invalidAIPayload"
	MsgValidationFailed   = "validationFailed"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailAISuggest      = "failAISuggest"
	MsgFailAIGenerate     = "failAIGenerate"
	MsgFailAIAnalyze      = "failAIAnalyze"
	MsgAINotConfigured    = "aiNotConfigured"
	MsgAIInvalidKey       = "aiInvalidKey"
	MsgAIQuotaExceeded    = "aiQuotaExceeded"
	MsgAIInvalidResponse  = "aiInvalidResponse"
	MsgInternalError      = "internalError"

	MsgTaskCreated       = "taskCreated"
	MsgTaskUpdated       = "taskUpdated"
	MsgTaskDeleted       = "taskDeleted"
	MsgTaskStatusUpdated = "taskStatusUpdated"
)
