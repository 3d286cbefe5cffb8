package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todolists/backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func seededRepo() *MemoryTodoListRepository {
	return NewMemoryTodoListRepository(
		models.TodoList{ID: 1, Name: "test1", Items: []models.TodoItem{}},
		models.TodoList{ID: 2, Name: "test2", Items: []models.TodoItem{}},
	)
}

func TestMemory_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	lists, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TodoList{
		{ID: 1, Name: "test1", Items: []models.TodoItem{}},
		{ID: 2, Name: "test2", Items: []models.TodoItem{}},
	}, lists)

	empty, err := NewMemoryTodoListRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemory_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	list, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "test1", list.Name)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "todo list with id 999 not found")
}

func TestMemory_Create(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	list, err := repo.Create(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, &models.TodoList{ID: 3, Name: "new", Items: []models.TodoItem{}}, list)

	lists, _ := repo.FindAll(ctx)
	assert.Len(t, lists, 3)
}

func TestMemory_Create_ReusesFreedID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoListRepository()

	a, err := repo.Create(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, 1, a.ID)
	require.NoError(t, repo.Delete(ctx, a.ID))

	b, err := repo.Create(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 1, b.ID)
}

func TestMemory_Create_UsesMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoListRepository(
		models.TodoList{ID: 5, Name: "five"},
		models.TodoList{ID: 2, Name: "two"},
	)

	list, err := repo.Create(ctx, "next")
	require.NoError(t, err)
	assert.Equal(t, 6, list.ID)

	// 最大IDでないものを削除しても採番は変わらない
	require.NoError(t, repo.Delete(ctx, 2))
	list, err = repo.Create(ctx, "after")
	require.NoError(t, err)
	assert.Equal(t, 7, list.ID)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	_, err := repo.CreateItem(ctx, 1, "keep me", false)
	require.NoError(t, err)

	list, err := repo.Update(ctx, 1, ptr("modified"))
	require.NoError(t, err)
	assert.Equal(t, "modified", list.Name)
	assert.Len(t, list.Items, 1, "items must not be touched")

	stored, _ := repo.FindByID(ctx, 1)
	assert.Equal(t, "modified", stored.Name)

	unchanged, err := repo.Update(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "modified", unchanged.Name)

	_, err = repo.Update(ctx, 999, ptr("modified"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	require.NoError(t, repo.Delete(ctx, 1))
	lists, _ := repo.FindAll(ctx)
	require.Len(t, lists, 1)
	assert.Equal(t, 2, lists[0].ID)

	require.ErrorIs(t, repo.Delete(ctx, 999), ErrNotFound)
}

func TestMemory_Delete_CascadesItems(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	item, err := repo.CreateItem(ctx, 1, "Task", false)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.FindItem(ctx, 1, item.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindItems(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	// 同じIDでリストを作り直しても古いアイテムは残っていない
	list, err := repo.Create(ctx, "again")
	require.NoError(t, err)
	items, err := repo.FindItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_Items(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	first, err := repo.CreateItem(ctx, 1, "Test item 1", false)
	require.NoError(t, err)
	second, err := repo.CreateItem(ctx, 1, "Test item 2", true)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// アイテムIDはリストごとに採番される
	other, err := repo.CreateItem(ctx, 2, "Other list item", false)
	require.NoError(t, err)
	assert.Equal(t, 1, other.ID)

	t.Run("FindItems returns insertion order", func(t *testing.T) {
		items, err := repo.FindItems(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Test item 1", items[0].Title)
		assert.Equal(t, "Test item 2", items[1].Title)
	})

	t.Run("FindItem", func(t *testing.T) {
		item, err := repo.FindItem(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, &models.TodoItem{ID: 1, Title: "Test item 1", Completed: false}, item)
	})

	t.Run("FindItem distinguishes missing list and item by message", func(t *testing.T) {
		_, err := repo.FindItem(ctx, 1, 999)
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "todo item with id 999 not found in todo list 1")

		_, err = repo.FindItem(ctx, 999, 1)
		require.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "todo list with id 999 not found")
	})

	t.Run("CreateItem on missing list", func(t *testing.T) {
		_, err := repo.CreateItem(ctx, 999, "nope", false)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemory_UpdateItem_Partial(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	_, err := repo.CreateItem(ctx, 1, "Task", false)
	require.NoError(t, err)

	item, err := repo.UpdateItem(ctx, 1, 1, models.TodoItemPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Task", item.Title)
	assert.True(t, item.Completed)

	item, err = repo.UpdateItem(ctx, 1, 1, models.TodoItemPatch{Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", item.Title)
	assert.True(t, item.Completed)

	stored, _ := repo.FindItem(ctx, 1, 1)
	assert.Equal(t, item, stored)

	_, err = repo.UpdateItem(ctx, 1, 999, models.TodoItemPatch{Title: ptr("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DeleteItem(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	_, _ = repo.CreateItem(ctx, 1, "Test item 1", false)
	_, _ = repo.CreateItem(ctx, 1, "Test item 2", true)

	require.NoError(t, repo.DeleteItem(ctx, 1, 1))
	items, err := repo.FindItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)

	require.ErrorIs(t, repo.DeleteItem(ctx, 1, 999), ErrNotFound)
	require.ErrorIs(t, repo.DeleteItem(ctx, 999, 1), ErrNotFound)
}

func TestMemory_CreateItem_ReusesFreedID(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	_, err := repo.CreateItem(ctx, 1, "Test item 1", false)
	require.NoError(t, err)
	second, err := repo.CreateItem(ctx, 1, "Test item 2", false)
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	require.NoError(t, repo.DeleteItem(ctx, 1, second.ID))

	again, err := repo.CreateItem(ctx, 1, "Test item 3", true)
	require.NoError(t, err)
	assert.Equal(t, 2, again.ID)

	items, err := repo.FindItems(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.TodoItem{
		{ID: 1, Title: "Test item 1"},
		{ID: 2, Title: "Test item 3", Completed: true},
	}, items)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()
	_, _ = repo.CreateItem(ctx, 1, "Task", false)

	list, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	list.Name = "mutated"
	list.Items[0].Title = "mutated"

	stored, _ := repo.FindByID(ctx, 1)
	assert.Equal(t, "test1", stored.Name)
	assert.Equal(t, "Task", stored.Items[0].Title)
}
