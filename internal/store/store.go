package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// columnTypes are the SQL types of domain.JoinedColumns
var columnTypes = map[string]string{
	"Sale_ID":           "TEXT",
	"Date":              "TIMESTAMP",
	"Product_ID":        "TEXT",
	"Customer_ID":       "TEXT",
	"Units_Sold":        "REAL",
	"Unit_Price":        "REAL",
	"Promotion_Applied": "TEXT",
	"Region_x":          "TEXT",
	"Month":             "INTEGER",
	"Day":               "INTEGER",
	"Weekday":           "TEXT",
	"Product_Name":      "TEXT",
	"Category":          "TEXT",
	"Region_y":          "TEXT",
	"Total_Sales":       "REAL",
}

// Store writes joined rows to one table
type Store struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// Open connects to driver/dsn. An in-memory SQLite database lives only as
// long as its connection, so the pool is held to a single connection.
func Open(ctx context.Context, driver, dsn, table string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database", err).
			WithContext("driver", driver)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to connect to database", err).
			WithContext("driver", driver)
	}

	return New(db, table, logger), nil
}

// New wraps an open database
func New(db *sql.DB, table string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, table: table, logger: logger.With("component", "store")}
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSalesData replaces the table with rows and returns the stored row count
func (s *Store) LoadSalesData(ctx context.Context, rows []domain.JoinedRow) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.storageError("failed to begin transaction", err)
	}

	if err := s.replaceTable(ctx, tx, rows); err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, s.storageError("failed to commit", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Sales data stored",
		slog.String("table", s.table),
		slog.Int("rows", count))
	return count, nil
}

func (s *Store) replaceTable(ctx context.Context, tx *sql.Tx, rows []domain.JoinedRow) error {
	if _, err := tx.ExecContext(ctx, dropTableSQL(s.table)); err != nil {
		return s.storageError("failed to drop table", err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(s.table)); err != nil {
		return s.storageError("failed to create table", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(s.table))
	if err != nil {
		return s.storageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i].Values()...); err != nil {
			return s.storageError("failed to insert row", err).WithContext("row", i)
		}
	}
	return nil
}

// Count returns the number of stored rows
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, countSQL(s.table)).Scan(&count); err != nil {
		return 0, s.storageError("failed to count rows", err)
	}
	return count, nil
}

func (s *Store) storageError(message string, err error) *apperrors.AppError {
	return apperrors.NewStorageError(message, err).WithContext("table", s.table)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func dropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(table)
}

func createTableSQL(table string) string {
	defs := make([]string, len(domain.JoinedColumns))
	for i, col := range domain.JoinedColumns {
		defs[i] = quoteIdent(col) + " " + columnTypes[col]
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

func insertSQL(table string) string {
	cols := make([]string, len(domain.JoinedColumns))
	marks := make([]string, len(domain.JoinedColumns))
	for i, col := range domain.JoinedColumns {
		cols[i] = quoteIdent(col)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func countSQL(table string) string {
	return "SELECT COUNT(*) FROM " + quoteIdent(table)
}
