package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/models"
)

// MySQLTodoListRepository はMySQLにTodoListを保存するリポジトリです。
// スキーマは database.Migrate で作成されます。
type MySQLTodoListRepository struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// NewMySQLTodoListRepository は新しいMySQLTodoListRepositoryを作成します。
func NewMySQLTodoListRepository(db *sql.DB, log logrus.FieldLogger) *MySQLTodoListRepository {
	return &MySQLTodoListRepository{db: db, log: log}
}

// FindAll はすべてのTodoListをアイテム込みで取得します。
func (r *MySQLTodoListRepository) FindAll(ctx context.Context) ([]models.TodoList, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM todo_lists ORDER BY id")
	if err != nil {
		r.log.WithError(err).Error("Failed to query todo lists")
		return nil, fmt.Errorf("could not query todo lists: %w", err)
	}
	defer rows.Close()

	lists := []models.TodoList{}
	index := map[int]int{}
	for rows.Next() {
		l := models.TodoList{Items: []models.TodoItem{}}
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("could not scan todo list: %w", err)
		}
		index[l.ID] = len(lists)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo lists: %w", err)
	}
	if len(lists) == 0 {
		return lists, nil
	}

	itemRows, err := r.db.QueryContext(ctx, "SELECT list_id, id, title, completed FROM todo_items ORDER BY list_id, id")
	if err != nil {
		r.log.WithError(err).Error("Failed to query todo items")
		return nil, fmt.Errorf("could not query todo items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var listID int
		var it models.TodoItem
		if err := itemRows.Scan(&listID, &it.ID, &it.Title, &it.Completed); err != nil {
			return nil, fmt.Errorf("could not scan todo item: %w", err)
		}
		if i, ok := index[listID]; ok {
			lists[i].Items = append(lists[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo items: %w", err)
	}
	return lists, nil
}

// FindByID は指定IDのTodoListをアイテム込みで取得します。
func (r *MySQLTodoListRepository) FindByID(ctx context.Context, id int) (*models.TodoList, error) {
	l, err := r.findList(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := r.queryItems(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Items = items
	return l, nil
}

// Create は最大ID + 1 でTodoListを挿入します。
func (r *MySQLTodoListRepository) Create(ctx context.Context, name string) (*models.TodoList, error) {
	var id int
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM todo_lists").Scan(&id); err != nil {
		return nil, fmt.Errorf("could not compute next todo list id: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "INSERT INTO todo_lists (id, name) VALUES (?, ?)", id, name); err != nil {
		r.log.WithError(err).Error("Failed to insert todo list")
		return nil, fmt.Errorf("could not insert todo list: %w", err)
	}
	return &models.TodoList{ID: id, Name: name, Items: []models.TodoItem{}}, nil
}

// Update はTodoListの名前を更新します。
func (r *MySQLTodoListRepository) Update(ctx context.Context, id int, name *string) (*models.TodoList, error) {
	if _, err := r.findList(ctx, id); err != nil {
		return nil, err
	}
	if name != nil {
		// MySQLは値が変わらない場合に0行を返すので、存在確認は事前に行う
		if _, err := r.db.ExecContext(ctx, "UPDATE todo_lists SET name = ? WHERE id = ?", *name, id); err != nil {
			r.log.WithError(err).Error("Failed to update todo list")
			return nil, fmt.Errorf("could not update todo list: %w", err)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete はTodoListとそのアイテムを1つのトランザクションで削除します。
func (r *MySQLTodoListRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM todo_items WHERE list_id = ?", id); err != nil {
		r.log.WithError(err).Error("Failed to delete todo items")
		return fmt.Errorf("could not delete todo items: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM todo_lists WHERE id = ?", id)
	if err != nil {
		r.log.WithError(err).Error("Failed to delete todo list")
		return fmt.Errorf("could not delete todo list: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return listNotFound(id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// FindItems はTodoList内のアイテムを取得します。
func (r *MySQLTodoListRepository) FindItems(ctx context.Context, listID int) ([]models.TodoItem, error) {
	if _, err := r.findList(ctx, listID); err != nil {
		return nil, err
	}
	return r.queryItems(ctx, listID)
}

// FindItem は指定IDのアイテムを取得します。
func (r *MySQLTodoListRepository) FindItem(ctx context.Context, listID, itemID int) (*models.TodoItem, error) {
	if _, err := r.findList(ctx, listID); err != nil {
		return nil, err
	}
	var it models.TodoItem
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, completed FROM todo_items WHERE list_id = ? AND id = ?", listID, itemID,
	).Scan(&it.ID, &it.Title, &it.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemNotFound(listID, itemID)
		}
		r.log.WithError(err).Error("Failed to query todo item by ID")
		return nil, fmt.Errorf("could not query todo item: %w", err)
	}
	return &it, nil
}

// CreateItem はリスト内の最大ID + 1 でアイテムを挿入します。
func (r *MySQLTodoListRepository) CreateItem(ctx context.Context, listID int, title string, completed bool) (*models.TodoItem, error) {
	if _, err := r.findList(ctx, listID); err != nil {
		return nil, err
	}
	var id int
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM todo_items WHERE list_id = ?", listID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("could not compute next todo item id: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO todo_items (list_id, id, title, completed) VALUES (?, ?, ?, ?)", listID, id, title, completed,
	)
	if err != nil {
		r.log.WithError(err).Error("Failed to insert todo item")
		return nil, fmt.Errorf("could not insert todo item: %w", err)
	}
	return &models.TodoItem{ID: id, Title: title, Completed: completed}, nil
}

// UpdateItem は指定されたフィールドだけを既存の値に上書きして保存します。
func (r *MySQLTodoListRepository) UpdateItem(ctx context.Context, listID, itemID int, patch models.TodoItemPatch) (*models.TodoItem, error) {
	it, err := r.FindItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Completed != nil {
		it.Completed = *patch.Completed
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE todo_items SET title = ?, completed = ? WHERE list_id = ? AND id = ?", it.Title, it.Completed, listID, itemID,
	)
	if err != nil {
		r.log.WithError(err).Error("Failed to update todo item")
		return nil, fmt.Errorf("could not update todo item: %w", err)
	}
	return it, nil
}

// DeleteItem はアイテムを削除します。
func (r *MySQLTodoListRepository) DeleteItem(ctx context.Context, listID, itemID int) error {
	if _, err := r.findList(ctx, listID); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM todo_items WHERE list_id = ? AND id = ?", listID, itemID)
	if err != nil {
		r.log.WithError(err).Error("Failed to delete todo item")
		return fmt.Errorf("could not delete todo item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return itemNotFound(listID, itemID)
	}
	return nil
}

func (r *MySQLTodoListRepository) findList(ctx context.Context, id int) (*models.TodoList, error) {
	l := models.TodoList{Items: []models.TodoItem{}}
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM todo_lists WHERE id = ?", id).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listNotFound(id)
		}
		r.log.WithError(err).Error("Failed to query todo list by ID")
		return nil, fmt.Errorf("could not query todo list: %w", err)
	}
	return &l, nil
}

func (r *MySQLTodoListRepository) queryItems(ctx context.Context, listID int) ([]models.TodoItem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title, completed FROM todo_items WHERE list_id = ? ORDER BY id", listID)
	if err != nil {
		r.log.WithError(err).Error("Failed to query todo items")
		return nil, fmt.Errorf("could not query todo items: %w", err)
	}
	defer rows.Close()

	items := []models.TodoItem{}
	for rows.Next() {
		var it models.TodoItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Completed); err != nil {
			return nil, fmt.Errorf("could not scan todo item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo items: %w", err)
	}
	return items, nil
}
