// Package modelsはTodoListとTodoItemを定義します。
package models

// TodoItem はTodoList内の1つのタスクを表します。
// IDは所属するTodoListの中でのみ一意です。
type TodoItem struct {
	ID        int    `json:"id"`        // リスト内で一意
	Title     string `json:"title"`     // タスクのタイトル
	Completed bool   `json:"completed"` // 完了状態
}

// CreateTodoItemRequest はアイテム作成時のリクエストボディです。
// completed が省略された場合は false として扱います。
type CreateTodoItemRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Completed *bool  `json:"completed"`
}

// UpdateTodoItemRequest はアイテム更新時のリクエストボディです。
// 指定されたフィールドだけが更新されます (nil は「変更しない」)。
type UpdateTodoItemRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=200"`
	Completed *bool   `json:"completed"`
}

// TodoItemPatch はリポジトリに渡す部分更新の内容です。
type TodoItemPatch struct {
	Title     *string
	Completed *bool
}

// Patch はリクエストを部分更新の内容に変換します。
func (r UpdateTodoItemRequest) Patch() TodoItemPatch {
	return TodoItemPatch{Title: r.Title, Completed: r.Completed}
}

// CompletedOrDefault は completed の値を返します。省略時は false です。
func (r CreateTodoItemRequest) CompletedOrDefault() bool {
	if r.Completed == nil {
		return false
	}
	return *r.Completed
}
