package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmind/internal/core/domain"
)

func TestBuildTaskQuery_Defaults(t *testing.T) {
	query, err := BuildTaskQuery(domain.FilterSpec{})

	require.NoError(t, err)
	assert.Equal(t, domain.SortByCreatedAt, query.SortBy)
	assert.Equal(t, domain.SortDesc, query.SortOrder)
	assert.Nil(t, query.Status)
	assert.Nil(t, query.Priority)
	assert.Nil(t, query.CategoryContains)
}

func TestBuildTaskQuery_AllFilters(t *testing.T) {
	query, err := BuildTaskQuery(domain.FilterSpec{
		Status:    "in-progress",
		Priority:  "urgent",
		Category:  " work ",
		SortBy:    "dueDate",
		SortOrder: "ASC",
	})

	require.NoError(t, err)
	require.NotNil(t, query.Status)
	assert.Equal(t, domain.TaskStatusInProgress, *query.Status)
	require.NotNil(t, query.Priority)
	assert.Equal(t, domain.TaskPriorityUrgent, *query.Priority)
	require.NotNil(t, query.CategoryContains)
	assert.Equal(t, "work", *query.CategoryContains)
	assert.Equal(t, domain.SortByDueDate, query.SortBy)
	assert.Equal(t, domain.SortAsc, query.SortOrder)
}

func TestBuildTaskQuery_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.FilterSpec
	}{
		{name: "status", filter: domain.FilterSpec{Status: "done"}},
		{name: "priority", filter: domain.FilterSpec{Priority: "critical"}},
		{name: "sortBy", filter: domain.FilterSpec{SortBy: "owner"}},
		{name: "sortBy is case sensitive", filter: domain.FilterSpec{SortBy: "DueDate"}},
		{name: "sortOrder", filter: domain.FilterSpec{SortOrder: "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTaskQuery(tt.filter)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTaskQueryEngine_List_DoesNotQueryOnInvalidFilter(t *testing.T) {
	repo := new(taskRepositoryMock)
	engine := NewTaskQueryEngine(repo)

	_, err := engine.List(context.Background(), domain.FilterSpec{Status: "unknown"})

	require.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "FindTasks", mock.Anything, mock.Anything)
}

func TestTaskQueryEngine_List_PassesQuery(t *testing.T) {
	repo := new(taskRepositoryMock)
	high := domain.TaskPriorityHigh
	expected := domain.TaskQuery{
		Priority:  &high,
		SortBy:    domain.SortByPriority,
		SortOrder: domain.SortDesc,
	}
	repo.On("FindTasks", mock.Anything, expected).Return([]domain.Task{{ID: 1}, {ID: 2}}, nil).Once()

	tasks, err := NewTaskQueryEngine(repo).List(context.Background(), domain.FilterSpec{
		Priority: "high",
		SortBy:   "priority",
	})

	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	repo.AssertExpectations(t)
}
