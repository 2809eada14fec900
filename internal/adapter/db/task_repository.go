package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

const taskColumns = `id, title, description, priority, status, category, due_date,
  estimated_duration, tags, ai_suggestions, created_at, updated_at`

const getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

const insertTaskQuery = `
INSERT INTO tasks (title, description, priority, status, category, due_date,
  estimated_duration, tags, ai_suggestions, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Escape character for LIKE patterns; '!' is valid in both MySQL and SQLite literals.
const likeEscape = "!"

var sortExpressions = map[domain.SortField]string{
	domain.SortByCreatedAt:         "created_at",
	domain.SortByUpdatedAt:         "updated_at",
	domain.SortByDueDate:           "due_date",
	domain.SortByTitle:             "title",
	domain.SortByCategory:          "category",
	domain.SortByEstimatedDuration: "estimated_duration",
	domain.SortByPriority:          "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 WHEN 'urgent' THEN 3 END",
	domain.SortByStatus:            "CASE status WHEN 'pending' THEN 0 WHEN 'in-progress' THEN 1 WHEN 'completed' THEN 2 WHEN 'cancelled' THEN 3 END",
}

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID                uint64         `db:"id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	Priority          string         `db:"priority"`
	Status            string         `db:"status"`
	Category          sql.NullString `db:"category"`
	DueDate           sql.NullTime   `db:"due_date"`
	EstimatedDuration sql.NullInt64  `db:"estimated_duration"`
	Tags              string         `db:"tags"`
	AISuggestions     sql.NullString `db:"ai_suggestions"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindTasks(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error) {
	statement, args, err := buildFindTasksQuery(query)
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, statement, args...); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func buildFindTasksQuery(query domain.TaskQuery) (string, []any, error) {
	var (
		conditions []string
		args       []any
	)
	if query.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*query.Status))
	}
	if query.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*query.Priority))
	}
	if query.CategoryContains != nil {
		conditions = append(conditions, "LOWER(category) LIKE ? ESCAPE '"+likeEscape+"'")
		args = append(args, "%"+escapeLike(strings.ToLower(*query.CategoryContains))+"%")
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.SortByCreatedAt
	}
	expression, ok := sortExpressions[sortBy]
	if !ok {
		return "", nil, domain.NewValidationError("unsupported sortBy %q", sortBy)
	}
	direction := "DESC"
	if query.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(taskColumns)
	b.WriteString(" FROM tasks")
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	// id follows insertion order, which keeps equal keys stable in both directions.
	fmt.Fprintf(&b, " ORDER BY %s %s, id ASC", expression, direction)

	return b.String(), args, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return replacer.Replace(value)
}

func (r *TaskRepository) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return getTask(ctx, r.db, id)
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	tags, err := encodeTags(input.Tags)
	if err != nil {
		return domain.Task{}, err
	}

	now := nowUTC()
	result, err := r.db.ExecContext(ctx, insertTaskQuery,
		input.Title,
		nullString(input.Description),
		string(input.Priority),
		string(input.Status),
		nullString(input.Category),
		nullDate(input.DueDate),
		nullInt(input.EstimatedDuration),
		tags,
		nullString(input.AISuggestions),
		now,
		now,
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return getTask(ctx, r.db, uint64(id))
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	assignments, args, err := buildUpdateAssignments(input)
	if err != nil {
		return domain.Task{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getTask(ctx, tx, id); err != nil {
		return domain.Task{}, err
	}

	statement := "UPDATE tasks SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	args = append(args, id)
	if _, err := tx.ExecContext(ctx, statement, args...); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}

	task, err := getTask(ctx, tx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("commit update: %w", err)
	}
	return task, nil
}

func buildUpdateAssignments(input domain.UpdateTaskInput) ([]string, []any, error) {
	var (
		assignments []string
		args        []any
	)
	set := func(column string, value any) {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}

	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.DescriptionSet {
		set("description", nullString(input.Description))
	}
	if input.Priority != nil {
		set("priority", string(*input.Priority))
	}
	if input.Status != nil {
		set("status", string(*input.Status))
	}
	if input.CategorySet {
		set("category", nullString(input.Category))
	}
	if input.DueDateSet {
		set("due_date", nullDate(input.DueDate))
	}
	if input.EstimatedDurationSet {
		set("estimated_duration", nullInt(input.EstimatedDuration))
	}
	if input.TagsSet {
		tags, err := encodeTags(input.Tags)
		if err != nil {
			return nil, nil, err
		}
		set("tags", tags)
	}
	if input.AISuggestionsSet {
		set("ai_suggestions", nullString(input.AISuggestions))
	}
	set("updated_at", nowUTC())

	return assignments, args, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func getTask(ctx context.Context, q sqlx.QueryerContext, id uint64) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, q, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return mapTaskRowToDomainTask(row)
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Priority:  domain.TaskPriority(row.Priority),
		Status:    domain.TaskStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
		Tags:      []string{},
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.Category.Valid {
		value := row.Category.String
		task.Category = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	if row.EstimatedDuration.Valid {
		value := int(row.EstimatedDuration.Int64)
		task.EstimatedDuration = &value
	}

	if row.AISuggestions.Valid {
		value := row.AISuggestions.String
		task.AISuggestions = &value
	}

	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &task.Tags); err != nil {
			return domain.Task{}, fmt.Errorf("decode tags of task %d: %w", row.ID, err)
		}
	}

	return task, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(encoded), nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullDate(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	y, m, d := value.Date()
	return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// nowUTC is truncated to the microsecond precision of DATETIME(6).
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
