package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"tour_sales_backend/internal/config"
	"tour_sales_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Connect opens the PostgreSQL pool, pings it and applies the schema file when one is configured.
func Connect(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database %s@%s:%s: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	utils.LogInfo("Connected to the database", map[string]interface{}{"host": cfg.Host, "name": cfg.Name})

	if err := applySchema(ctx, db, cfg.SchemaPath); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema executes the idempotent schema script at schemaPath.
func applySchema(ctx context.Context, db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		utils.LogInfo("No schema path provided, skipping schema application")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"path": schemaPath})
	return nil
}
