// Package handlers はHTTPリクエストをサービスの呼び出しに変換します。
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/models"
	"go-todolists/backend/internal/services"
	"go-todolists/backend/internal/validation"
)

// パスパラメータ名
const (
	todoListIDParam = "todoListId"
	itemIDParam     = "itemId"
)

// TodoListHandler はTodoList関連のハンドラーを管理します。
type TodoListHandler struct {
	todoListService *services.TodoListService
	log             logrus.FieldLogger
}

// NewTodoListHandler は新しいTodoListHandlerを作成します。
func NewTodoListHandler(todoListService *services.TodoListService, log logrus.FieldLogger) *TodoListHandler {
	return &TodoListHandler{todoListService: todoListService, log: log}
}

// GetTodoListsHandler はすべてのTodoListを返します。
func (h *TodoListHandler) GetTodoListsHandler(c *gin.Context) {
	lists, err := h.todoListService.GetTodoLists(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetTodoListHandler は指定IDのTodoListを返します。
func (h *TodoListHandler) GetTodoListHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.todoListService.GetTodoList(c.Request.Context(), ids[0])
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateTodoListHandler は新しいTodoListを作成します。
func (h *TodoListHandler) CreateTodoListHandler(c *gin.Context) {
	var req models.CreateTodoListRequest
	if err := validation.BindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.todoListService.CreateTodoList(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// UpdateTodoListHandler はTodoListを更新します。
func (h *TodoListHandler) UpdateTodoListHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req models.UpdateTodoListRequest
	if err := validation.BindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.todoListService.UpdateTodoList(c.Request.Context(), ids[0], req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteTodoListHandler はTodoListを削除します。
func (h *TodoListHandler) DeleteTodoListHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.todoListService.DeleteTodoList(c.Request.Context(), ids[0]); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetTodoItemsHandler はTodoList内のアイテムを返します。
func (h *TodoListHandler) GetTodoItemsHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	items, err := h.todoListService.GetTodoItems(c.Request.Context(), ids[0])
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetTodoItemHandler は指定IDのアイテムを返します。
func (h *TodoListHandler) GetTodoItemHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam, itemIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item, err := h.todoListService.GetTodoItem(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateTodoItemHandler はアイテムを作成します。
func (h *TodoListHandler) CreateTodoItemHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req models.CreateTodoItemRequest
	if err := validation.BindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	item, err := h.todoListService.CreateTodoItem(c.Request.Context(), ids[0], req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateTodoItemHandler はアイテムを部分更新します。
func (h *TodoListHandler) UpdateTodoItemHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam, itemIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req models.UpdateTodoItemRequest
	if err := validation.BindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	item, err := h.todoListService.UpdateTodoItem(c.Request.Context(), ids[0], ids[1], req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteTodoItemHandler はアイテムを削除します。
func (h *TodoListHandler) DeleteTodoItemHandler(c *gin.Context) {
	ids, err := validation.PathIDs(c, todoListIDParam, itemIDParam)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.todoListService.DeleteTodoItem(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}
