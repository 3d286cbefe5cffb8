package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/models"
	"go-todolists/backend/internal/repositories"
)

// TodoListService はTodoListとTodoItemのビジネスロジックを扱います。
type TodoListService struct {
	repo repositories.TodoListRepository
	log  logrus.FieldLogger
}

// NewTodoListService は新しいTodoListServiceを作成します。
func NewTodoListService(repo repositories.TodoListRepository, log logrus.FieldLogger) *TodoListService {
	return &TodoListService{repo: repo, log: log}
}

// GetTodoLists はすべてのTodoListを取得します。
func (s *TodoListService) GetTodoLists(ctx context.Context) ([]models.TodoList, error) {
	return s.repo.FindAll(ctx)
}

// GetTodoList は指定IDのTodoListを取得します。
func (s *TodoListService) GetTodoList(ctx context.Context, id int) (*models.TodoList, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateTodoList は新しいTodoListを作成します。
func (s *TodoListService) CreateTodoList(ctx context.Context, req models.CreateTodoListRequest) (*models.TodoList, error) {
	list, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	s.log.WithField("todo_list_id", list.ID).Info("Created todo list")
	return list, nil
}

// UpdateTodoList はTodoListの名前を更新します。
func (s *TodoListService) UpdateTodoList(ctx context.Context, id int, req models.UpdateTodoListRequest) (*models.TodoList, error) {
	list, err := s.repo.Update(ctx, id, req.Name)
	if err != nil {
		return nil, err
	}
	s.log.WithField("todo_list_id", id).Info("Updated todo list")
	return list, nil
}

// DeleteTodoList はTodoListとそのアイテムを削除します。
func (s *TodoListService) DeleteTodoList(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("todo_list_id", id).Info("Deleted todo list")
	return nil
}

// GetTodoItems はTodoList内のアイテムを取得します。
func (s *TodoListService) GetTodoItems(ctx context.Context, listID int) ([]models.TodoItem, error) {
	return s.repo.FindItems(ctx, listID)
}

// GetTodoItem は指定IDのアイテムを取得します。
func (s *TodoListService) GetTodoItem(ctx context.Context, listID, itemID int) (*models.TodoItem, error) {
	return s.repo.FindItem(ctx, listID, itemID)
}

// CreateTodoItem はアイテムを作成します。completed の省略時は false です。
func (s *TodoListService) CreateTodoItem(ctx context.Context, listID int, req models.CreateTodoItemRequest) (*models.TodoItem, error) {
	item, err := s.repo.CreateItem(ctx, listID, req.Title, req.CompletedOrDefault())
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"todo_list_id": listID, "todo_item_id": item.ID}).Info("Created todo item")
	return item, nil
}

// UpdateTodoItem はアイテムを部分更新します。
func (s *TodoListService) UpdateTodoItem(ctx context.Context, listID, itemID int, req models.UpdateTodoItemRequest) (*models.TodoItem, error) {
	item, err := s.repo.UpdateItem(ctx, listID, itemID, req.Patch())
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"todo_list_id": listID, "todo_item_id": itemID}).Info("Updated todo item")
	return item, nil
}

// DeleteTodoItem はアイテムを削除します。
func (s *TodoListService) DeleteTodoItem(ctx context.Context, listID, itemID int) error {
	if err := s.repo.DeleteItem(ctx, listID, itemID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"todo_list_id": listID, "todo_item_id": itemID}).Info("Deleted todo item")
	return nil
}
