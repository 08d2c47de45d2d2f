package db

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/localgroup-vla/qaplotter/qa/shared"
	"github.com/localgroup-vla/qaplotter/utils"
)

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// LoadTable creates table name from t and copies its rows in one transaction.
func LoadTable(ctx context.Context, conn *sql.DB, name string, t *shared.RawTable) error {
	cols := t.Columns()
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		names[i] = quoteIdent(col.GetName())
		defs[i] = names[i] + " " + col.GetTypeName()
		marks[i] = "?"
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)",
		quoteIdent(name), strings.Join(defs, ", ")))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row := int64(0); row < t.NumRows(); row++ {
		for i, col := range cols {
			args[i] = col.GetVal(row)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", row, name, err)
		}
	}
	return tx.Commit()
}

// Query loads tables into a fresh in-memory database, one SQL table per
// key, and renders the result of query in format.
func Query(ctx context.Context, tables map[string]*shared.RawTable, query string, format string) (string, error) {
	conn, err := ConnectDuckDB(ctx, "")
	if err != nil {
		return "", err
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	for _, name := range slices.Sorted(maps.Keys(tables)) {
		if tables[name].NumColumns() == 0 {
			continue
		}
		if err := LoadTable(ctx, conn, name, tables[name]); err != nil {
			return "", err
		}
	}
	start := time.Now()
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	return utils.ConversationOfRows(rows, format, time.Since(start))
}
