// Package database はMySQL接続とスキーママイグレーションを扱います。
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	"go-todolists/backend/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// GetDSN は設定からMySQL接続文字列 (DSN) を構築します。
func GetDSN(db config.Database) string {
	c := mysql.NewConfig()
	c.User = db.User
	c.Passwd = db.Pass
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(db.Host, db.Port)
	c.DBName = db.Name
	c.ParseTime = true
	return c.FormatDSN()
}

// InitDB はデータベース接続を初期化し、疎通を確認します。
func InitDB(cfg config.Database, log logrus.FieldLogger) (*sql.DB, error) {
	db, err := sql.Open("mysql", GetDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.WithField("host", cfg.Host).Info("Successfully connected to MySQL database")
	return db, nil
}

// Migrate は埋め込まれたマイグレーションを最新まで適用します。
// マイグレーション用に専用の接続を開き、終了時に閉じます。
func Migrate(cfg config.Database, log logrus.FieldLogger) error {
	db, err := sql.Open("mysql", GetDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("could not load migrations: %w", err)
	}
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("could not create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	version, _, _ := m.Version()
	log.WithField("version", version).Info("Applied database migrations")
	return nil
}
