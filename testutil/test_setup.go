package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"go-todolists/backend/internal/config"
	"go-todolists/backend/internal/database"
	"go-todolists/backend/internal/models"
	"go-todolists/backend/internal/repositories"
	"go-todolists/backend/internal/routes"
)

// TestFrontendURL はテスト用ルーターで許可するオリジンです。
const TestFrontendURL = "http://localhost:5173"

// NewTestLogger はテスト中は出力しないロガーを作成します。
func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// SetupTestRouter はインメモリストアを使ったテスト用のGinルーターを作成します。
func SetupTestRouter(t *testing.T, seed ...models.TodoList) (*gin.Engine, *repositories.MemoryTodoListRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repositories.NewMemoryTodoListRepository(seed...)
	router := routes.SetupRouter(routes.Options{
		Repo:        repo,
		FrontendURL: TestFrontendURL,
		Log:         NewTestLogger(),
	})
	return router, repo
}

// SetupTestDB はテスト用のMySQLに接続し、スキーマを作成してテーブルを空にします。
// TEST_DB_HOST が設定されていない場合はテストをスキップします。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.MySQLTodoListRepository) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		t.Skip("TEST_DB_HOST is not set; skipping MySQL integration test")
	}
	cfg := config.Database{
		User: os.Getenv("TEST_DB_USER"),
		Pass: os.Getenv("TEST_DB_PASS"),
		Host: dbHost,
		Port: os.Getenv("TEST_DB_PORT"),
		Name: os.Getenv("TEST_DB_NAME"),
	}
	if cfg.Port == "" {
		cfg.Port = "3306"
	}

	log := NewTestLogger()
	require.NoError(t, database.Migrate(cfg, log), "failed to migrate test database")

	db, err := database.InitDB(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// テストのたびにクリーンな状態にする (todo_items -> todo_lists の順)
	for _, table := range []string{"todo_items", "todo_lists"} {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		require.NoError(t, err, "failed to clean %s", table)
	}

	gin.SetMode(gin.TestMode)
	repo := repositories.NewMySQLTodoListRepository(db, log)
	router := routes.SetupRouter(routes.Options{
		Repo:        repo,
		DB:          db,
		FrontendURL: TestFrontendURL,
		Log:         log,
	})
	return db, router, repo
}

// DoJSON はJSONボディ付きのリクエストをルーターに送信します。body が nil の場合はボディなしです。
func DoJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodoList はAPI経由でTodoListを作成します。
func CreateTestTodoList(t *testing.T, router *gin.Engine, name string) *models.TodoList {
	t.Helper()
	resp := DoJSON(t, router, http.MethodPost, "/api/todolists", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, "TodoList作成に失敗しました: %s", resp.Body.String())

	var created models.TodoList
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}

// CreateTestTodoItem はAPI経由でTodoItemを作成します。
func CreateTestTodoItem(t *testing.T, router *gin.Engine, listID int, title string, completed bool) *models.TodoItem {
	t.Helper()
	path := fmt.Sprintf("/api/todolists/%d/todos", listID)
	resp := DoJSON(t, router, http.MethodPost, path, map[string]any{"title": title, "completed": completed})
	require.Equal(t, http.StatusCreated, resp.Code, "TodoItem作成に失敗しました: %s", resp.Body.String())

	var created models.TodoItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}
