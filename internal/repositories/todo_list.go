// Package repositories はTodoListとTodoItemの永続化を行うリポジトリを提供します。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"go-todolists/backend/internal/models"
)

// ErrNotFound はTodoListまたはTodoItemが見つからない場合のエラーです。
// 個別のエラーはこの値をラップするので errors.Is で判定します。
var ErrNotFound = errors.New("not found")

// TodoListRepository はTodoListとその中のTodoItemを扱うストアの契約です。
// IDは「現在の最大ID + 1 (空なら1)」で採番されます。
type TodoListRepository interface {
	FindAll(ctx context.Context) ([]models.TodoList, error)
	FindByID(ctx context.Context, id int) (*models.TodoList, error)
	Create(ctx context.Context, name string) (*models.TodoList, error)
	Update(ctx context.Context, id int, name *string) (*models.TodoList, error)
	Delete(ctx context.Context, id int) error

	FindItems(ctx context.Context, listID int) ([]models.TodoItem, error)
	FindItem(ctx context.Context, listID, itemID int) (*models.TodoItem, error)
	CreateItem(ctx context.Context, listID int, title string, completed bool) (*models.TodoItem, error)
	UpdateItem(ctx context.Context, listID, itemID int, patch models.TodoItemPatch) (*models.TodoItem, error)
	DeleteItem(ctx context.Context, listID, itemID int) error
}

func listNotFound(id int) error {
	return fmt.Errorf("todo list with id %d %w", id, ErrNotFound)
}

func itemNotFound(listID, itemID int) error {
	return fmt.Errorf("todo item with id %d %w in todo list %d", itemID, ErrNotFound, listID)
}
