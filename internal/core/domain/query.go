package domain

// FilterSpec is the caller-facing list request. Empty strings mean "not supplied".
type FilterSpec struct {
	Status    string
	Priority  string
	Category  string
	SortBy    string
	SortOrder string
}

type SortField string

const (
	SortByCreatedAt         SortField = "createdAt"
	SortByUpdatedAt         SortField = "updatedAt"
	SortByDueDate           SortField = "dueDate"
	SortByTitle             SortField = "title"
	SortByPriority          SortField = "priority"
	SortByStatus            SortField = "status"
	SortByCategory          SortField = "category"
	SortByEstimatedDuration SortField = "estimatedDuration"
)

var SortFields = []SortField{
	SortByCreatedAt,
	SortByUpdatedAt,
	SortByDueDate,
	SortByTitle,
	SortByPriority,
	SortByStatus,
	SortByCategory,
	SortByEstimatedDuration,
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskQuery is a validated FilterSpec, ready for the store.
type TaskQuery struct {
	Status           *TaskStatus
	Priority         *TaskPriority
	CategoryContains *string
	SortBy           SortField
	SortOrder        SortOrder
}
