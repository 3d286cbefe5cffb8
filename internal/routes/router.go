// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/handlers"
	"go-todolists/backend/internal/metrics"
	"go-todolists/backend/internal/repositories"
	"go-todolists/backend/internal/services"
	"go-todolists/backend/internal/validation"
)

// Options はルーターの構築に必要な依存関係です。
type Options struct {
	Repo        repositories.TodoListRepository
	DB          *sql.DB // MySQLストアのときだけ設定される
	FrontendURL string
	Log         *logrus.Logger
	Metrics     *metrics.Metrics
}

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(opts Options) *gin.Engine {
	validation.Setup()
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	r := gin.New()
	r.Use(RequestLogger(opts.Log))
	r.Use(Metrics(opts.Metrics))
	// Recovery は内側に置き、500を書き込んでからログとメトリクスに戻す
	r.Use(Recovery(opts.Log))

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{opts.FrontendURL}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour
	r.Use(cors.New(config))

	// サービス
	todoListService := services.NewTodoListService(opts.Repo, opts.Log)

	// ハンドラー
	todoListHandler := handlers.NewTodoListHandler(todoListService, opts.Log)

	// ルーティング
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/api/health", HealthHandler)
	r.GET("/api/dbcheck", func(c *gin.Context) { DBCheckHandler(c, opts.DB) })

	todoLists := r.Group("/api/todolists")
	{
		todoLists.GET("", todoListHandler.GetTodoListsHandler)
		todoLists.GET("/:todoListId", todoListHandler.GetTodoListHandler)
		todoLists.POST("", todoListHandler.CreateTodoListHandler)
		todoLists.PUT("/:todoListId", todoListHandler.UpdateTodoListHandler)
		todoLists.DELETE("/:todoListId", todoListHandler.DeleteTodoListHandler)

		todoLists.GET("/:todoListId/todos", todoListHandler.GetTodoItemsHandler)
		todoLists.GET("/:todoListId/todos/:itemId", todoListHandler.GetTodoItemHandler)
		todoLists.POST("/:todoListId/todos", todoListHandler.CreateTodoItemHandler)
		todoLists.PUT("/:todoListId/todos/:itemId", todoListHandler.UpdateTodoItemHandler)
		todoLists.DELETE("/:todoListId/todos/:itemId", todoListHandler.DeleteTodoItemHandler)
	}

	return r
}

// HealthHandler はシンプルなヘルスチェックエンドポイントです。
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheckHandler はデータベース接続の健全性を確認します。
// インメモリストアの場合は db が nil です。
func DBCheckHandler(c *gin.Context, db *sql.DB) {
	if db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "memory"})
		return
	}
	if err := db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "mysql", "message": "Database connection is healthy"})
}
