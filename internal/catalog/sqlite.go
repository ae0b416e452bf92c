package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable is the SQLite table that holds catalog rows.
const DefaultTable = "recipes"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource stores a catalog in a SQLite database. Rows keep their source order
// through the position column.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist. An empty table selects DefaultTable.
func OpenSQLite(dbPath, table string) (*SQLiteSource, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db, table); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteSource{db: db, table: table}, nil
}

func initSchema(db *sql.DB, table string) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		minutes INTEGER NOT NULL,
		n_ingredients INTEGER NOT NULL,
		ingredients TEXT NOT NULL,
		steps TEXT NOT NULL,
		calories REAL NOT NULL,
		total_fat REAL NOT NULL,
		sugar REAL NOT NULL,
		sodium REAL NOT NULL,
		protein REAL NOT NULL,
		saturated_fat REAL NOT NULL,
		carbohydrates REAL NOT NULL,
		categories INTEGER NOT NULL DEFAULT 0
	);
	`, table)
	_, err := db.Exec(schema)
	return err
}

// Save replaces the stored catalog with t in a single transaction.
func (s *SQLiteSource) Save(ctx context.Context, t *Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (position, name, minutes, n_ingredients, ingredients, steps,
		 calories, total_fat, sugar, sodium, protein, saturated_fat, carbohydrates, categories)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows() {
		n := row.Nutrition
		if _, err := stmt.ExecContext(ctx,
			i, row.Name, row.Minutes, row.NumIngredients, row.Ingredients, row.Steps,
			n[Calories], n[TotalFat], n[Sugar], n[Sodium], n[Protein], n[SaturatedFat], n[Carbohydrates],
			int64(row.Categories),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load reads the stored catalog in source order.
func (s *SQLiteSource) Load(ctx context.Context) (*Table, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT name, minutes, n_ingredients, ingredients, steps,
		 calories, total_fat, sugar, sodium, protein, saturated_fat, carbohydrates, categories
		 FROM %s ORDER BY position`, s.table))
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row  Row
			cats int64
		)
		n := &row.Nutrition
		if err := rows.Scan(&row.Name, &row.Minutes, &row.NumIngredients, &row.Ingredients, &row.Steps,
			&n[Calories], &n[TotalFat], &n[Sugar], &n[Sodium], &n[Protein], &n[SaturatedFat], &n[Carbohydrates],
			&cats); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Categories = CategorySet(cats)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewTable(out), nil
}

// Count returns the number of stored rows.
func (s *SQLiteSource) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
