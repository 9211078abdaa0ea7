package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hdrbar/pkg/types"
)

// SQLiteStore keeps layouts in a SQLite database, one row per column
type SQLiteStore struct {
	db *sql.DB
}

// InitDB creates the layout tables if they do not exist
func InitDB(db *sql.DB) error {
	stmts := []string{
		`create table if not exists layouts(
			name text primary key,
			sort_column int not null,
			sort_ascending bool not null,
			scroll_offset int not null,
			updated_at datetime not null)`,
		`create table if not exists layout_columns(
			layout text not null references layouts(name) on delete cascade,
			idx int not null,
			pos int not null,
			title text not null,
			width int not null,
			hidden bool not null,
			primary key (layout, idx))`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize layout tables: %w", err)
		}
	}
	return nil
}

// OpenSQLite opens the database at path, creating the tables if needed.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	// an in-memory database lives as long as its single connection
	db.SetMaxOpenConns(1)

	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore creates a new store on an initialized database
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns the layout stored under name
func (s *SQLiteStore) Load(name string) (types.Layout, error) {
	layout := types.Layout{Name: name}

	err := s.db.QueryRow(
		`select sort_column, sort_ascending, scroll_offset, updated_at
		from layouts where name = ?`, name).
		Scan(&layout.Sort.Column, &layout.Sort.Ascending, &layout.ScrollOffset, &layout.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Layout{}, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	if err != nil {
		return types.Layout{}, fmt.Errorf("failed to load layout %q: %w", name, err)
	}

	rows, err := s.db.Query(
		`select idx, pos, title, width, hidden
		from layout_columns where layout = ?
		order by idx`, name)
	if err != nil {
		return types.Layout{}, fmt.Errorf("failed to load columns of %q: %w", name, err)
	}
	defer rows.Close()

	positions := make([]int, 0)
	for rows.Next() {
		var idx, pos int
		var col types.ColumnLayout

		if err := rows.Scan(&idx, &pos, &col.Title, &col.Width, &col.Hidden); err != nil {
			return types.Layout{}, fmt.Errorf("failed to scan column of %q: %w", name, err)
		}
		layout.Columns = append(layout.Columns, col)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return types.Layout{}, fmt.Errorf("failed to load columns of %q: %w", name, err)
	}

	layout.Order = orderFromPositions(positions)
	return layout, nil
}

// orderFromPositions inverts a logical index to display position mapping.
// Positions that do not form a permutation are placed in logical order.
func orderFromPositions(positions []int) []int {
	order := make([]int, len(positions))
	for i := range order {
		order[i] = -1
	}
	for idx, pos := range positions {
		if pos < 0 || pos >= len(order) || order[pos] != -1 {
			return identity(len(positions))
		}
		order[pos] = idx
	}
	return order
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// Save stores a layout under its name, replacing any previous one
func (s *SQLiteStore) Save(layout types.Layout) error {
	if len(layout.Order) != len(layout.Columns) {
		return fmt.Errorf("layout %q has %d columns but an order of %d", layout.Name, len(layout.Columns), len(layout.Order))
	}

	positions := make([]int, len(layout.Columns))
	for pos, idx := range layout.Order {
		if idx < 0 || idx >= len(positions) {
			return fmt.Errorf("layout %q: column %d out of range", layout.Name, idx)
		}
		positions[idx] = pos
	}

	updatedAt := layout.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`delete from layout_columns where layout = ?`, layout.Name); err != nil {
		return fmt.Errorf("failed to clear columns of %q: %w", layout.Name, err)
	}

	_, err = tx.Exec(
		`insert into layouts(name, sort_column, sort_ascending, scroll_offset, updated_at)
		values(?, ?, ?, ?, ?)
		on conflict(name) do update set
			sort_column = excluded.sort_column,
			sort_ascending = excluded.sort_ascending,
			scroll_offset = excluded.scroll_offset,
			updated_at = excluded.updated_at`,
		layout.Name, layout.Sort.Column, layout.Sort.Ascending, layout.ScrollOffset, updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save layout %q: %w", layout.Name, err)
	}

	for idx, col := range layout.Columns {
		_, err := tx.Exec(
			`insert into layout_columns(layout, idx, pos, title, width, hidden)
			values(?, ?, ?, ?, ?, ?)`,
			layout.Name, idx, positions[idx], col.Title, col.Width, col.Hidden)
		if err != nil {
			return fmt.Errorf("failed to save column %d of %q: %w", idx, layout.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit layout %q: %w", layout.Name, err)
	}
	return nil
}

// List returns the stored layout names in alphabetical order
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`select name from layouts order by name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the layout stored under name
func (s *SQLiteStore) Delete(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`delete from layout_columns where layout = ?`, name); err != nil {
		return fmt.Errorf("failed to delete columns of %q: %w", name, err)
	}
	res, err := tx.Exec(`delete from layouts where name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}

	return tx.Commit()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
