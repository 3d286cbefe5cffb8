package services_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todolists/backend/internal/models"
	"go-todolists/backend/internal/repositories"
	"go-todolists/backend/internal/services"
)

func newService() (*services.TodoListService, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	repo := repositories.NewMemoryTodoListRepository()
	return services.NewTodoListService(repo, log), hook
}

func TestTodoListService_CreateTodoItem_DefaultsCompleted(t *testing.T) {
	ctx := context.Background()
	svc, hook := newService()

	list, err := svc.CreateTodoList(ctx, models.CreateTodoListRequest{Name: "Groceries"})
	require.NoError(t, err)

	item, err := svc.CreateTodoItem(ctx, list.ID, models.CreateTodoItemRequest{Title: "Milk"})
	require.NoError(t, err)
	assert.False(t, item.Completed)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Created todo item", entry.Message)
	assert.Equal(t, list.ID, entry.Data["todo_list_id"])
	assert.Equal(t, item.ID, entry.Data["todo_item_id"])
}

func TestTodoListService_UpdateTodoItem_Partial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	list, err := svc.CreateTodoList(ctx, models.CreateTodoListRequest{Name: "Groceries"})
	require.NoError(t, err)
	item, err := svc.CreateTodoItem(ctx, list.ID, models.CreateTodoItemRequest{Title: "Milk"})
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateTodoItem(ctx, list.ID, item.ID, models.UpdateTodoItemRequest{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, "Milk", updated.Title)
	assert.True(t, updated.Completed)

	title := "Oat milk"
	updated, err = svc.UpdateTodoItem(ctx, list.ID, item.ID, models.UpdateTodoItemRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", updated.Title)
	assert.True(t, updated.Completed)
}

func TestTodoListService_NotFoundIsNotLogged(t *testing.T) {
	ctx := context.Background()
	svc, hook := newService()

	err := svc.DeleteTodoList(ctx, 42)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, hook.AllEntries())

	_, err = svc.GetTodoItem(ctx, 42, 1)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
