package models

// TodoList は名前付きのTodoItemのコンテナです。
type TodoList struct {
	ID    int        `json:"id"`    // 主キー
	Name  string     `json:"name"`  // リスト名 (1〜100文字)
	Items []TodoItem `json:"items"` // 挿入順。空の場合も [] を返す
}

// CreateTodoListRequest はリスト作成時のリクエストボディです。
type CreateTodoListRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateTodoListRequest はリスト更新時のリクエストボディです。
type UpdateTodoListRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}
