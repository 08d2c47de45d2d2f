package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2" // load duckdb driver
)

// ConnectDuckDB opens a DuckDB database at filePath, in memory when empty,
// and applies settings such as "SET threads TO 2" in order.
func ConnectDuckDB(ctx context.Context, filePath string, settings ...string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to DuckDB: %w", err)
	}
	for _, s := range settings {
		if _, err := conn.ExecContext(ctx, s); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", s, err)
		}
	}
	return conn, nil
}
