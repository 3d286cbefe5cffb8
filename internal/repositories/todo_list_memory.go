package repositories

import (
	"context"
	"sync"

	"go-todolists/backend/internal/models"
)

// MemoryTodoListRepository はプロセス内のスライスでTodoListを保持するリポジトリです。
// 検索はすべて線形走査です。
type MemoryTodoListRepository struct {
	mu    sync.Mutex
	lists []*models.TodoList
}

// NewMemoryTodoListRepository は新しいMemoryTodoListRepositoryを作成します。
// seed を渡すと初期データとして複製して保持します。
func NewMemoryTodoListRepository(seed ...models.TodoList) *MemoryTodoListRepository {
	r := &MemoryTodoListRepository{}
	for _, l := range seed {
		c := cloneList(&l)
		r.lists = append(r.lists, &c)
	}
	return r
}

// FindAll はすべてのTodoListを挿入順で返します。
func (r *MemoryTodoListRepository) FindAll(_ context.Context) ([]models.TodoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lists := make([]models.TodoList, 0, len(r.lists))
	for _, l := range r.lists {
		lists = append(lists, cloneList(l))
	}
	return lists, nil
}

// FindByID は指定IDのTodoListを返します。
func (r *MemoryTodoListRepository) FindByID(_ context.Context, id int) (*models.TodoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.find(id)
	if err != nil {
		return nil, err
	}
	c := cloneList(l)
	return &c, nil
}

// Create は新しいTodoListを作成します。
func (r *MemoryTodoListRepository) Create(_ context.Context, name string) (*models.TodoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, l := range r.lists {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	l := &models.TodoList{ID: maxID + 1, Name: name, Items: []models.TodoItem{}}
	r.lists = append(r.lists, l)

	c := cloneList(l)
	return &c, nil
}

// Update はTodoListの名前を更新します。name が nil の場合は何も変更しません。
func (r *MemoryTodoListRepository) Update(_ context.Context, id int, name *string) (*models.TodoList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.find(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		l.Name = *name
	}
	c := cloneList(l)
	return &c, nil
}

// Delete はTodoListとその中のすべてのTodoItemを削除します。
func (r *MemoryTodoListRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.lists {
		if l.ID == id {
			r.lists = append(r.lists[:i], r.lists[i+1:]...)
			return nil
		}
	}
	return listNotFound(id)
}

// FindItems はTodoList内のTodoItemを挿入順で返します。
func (r *MemoryTodoListRepository) FindItems(_ context.Context, listID int) ([]models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.find(listID)
	if err != nil {
		return nil, err
	}
	return cloneItems(l.Items), nil
}

// FindItem は指定IDのTodoItemを返します。
func (r *MemoryTodoListRepository) FindItem(_ context.Context, listID, itemID int) (*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, i, err := r.findItem(listID, itemID)
	if err != nil {
		return nil, err
	}
	item := *i
	return &item, nil
}

// CreateItem はTodoListに新しいTodoItemを追加します。IDはリストごとに採番されます。
func (r *MemoryTodoListRepository) CreateItem(_ context.Context, listID int, title string, completed bool) (*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.find(listID)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for _, it := range l.Items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	item := models.TodoItem{ID: maxID + 1, Title: title, Completed: completed}
	l.Items = append(l.Items, item)
	return &item, nil
}

// UpdateItem は指定されたフィールドだけを更新します。
func (r *MemoryTodoListRepository) UpdateItem(_ context.Context, listID, itemID int, patch models.TodoItemPatch) (*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, i, err := r.findItem(listID, itemID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		i.Title = *patch.Title
	}
	if patch.Completed != nil {
		i.Completed = *patch.Completed
	}
	item := *i
	return &item, nil
}

// DeleteItem はTodoItemをリストから削除します。
func (r *MemoryTodoListRepository) DeleteItem(_ context.Context, listID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.find(listID)
	if err != nil {
		return err
	}
	for idx, it := range l.Items {
		if it.ID == itemID {
			l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
			return nil
		}
	}
	return itemNotFound(listID, itemID)
}

// find は r.mu を保持した状態で呼び出してください。
func (r *MemoryTodoListRepository) find(id int) (*models.TodoList, error) {
	for _, l := range r.lists {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, listNotFound(id)
}

func (r *MemoryTodoListRepository) findItem(listID, itemID int) (*models.TodoList, *models.TodoItem, error) {
	l, err := r.find(listID)
	if err != nil {
		return nil, nil, err
	}
	for idx := range l.Items {
		if l.Items[idx].ID == itemID {
			return l, &l.Items[idx], nil
		}
	}
	return nil, nil, itemNotFound(listID, itemID)
}

func cloneList(l *models.TodoList) models.TodoList {
	return models.TodoList{ID: l.ID, Name: l.Name, Items: cloneItems(l.Items)}
}

func cloneItems(items []models.TodoItem) []models.TodoItem {
	c := make([]models.TodoItem, len(items))
	copy(c, items)
	return c
}
