package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// SQLite Repository
// ============================================================

// ErrNotFound возвращается, когда конверсия не найдена.
var ErrNotFound = errors.New("conversion not found")

// Conversion — запись истории обработки одного загруженного чертежа.
type Conversion struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Pages       int    `json:"pages"`
	Floors      int    `json:"floors"`
	Rooms       int    `json:"rooms"`
	VertexCount int    `json:"vertex_count"`
	FaceCount   int    `json:"face_count"`
	CreatedAt   string `json:"created_at"`
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Insert сохраняет новую конверсию со статусом uploaded.
func (r *Repository) Insert(ctx context.Context, id, filename string, pages int) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO conversions (id, filename, status, pages)
        VALUES (?, ?, 'uploaded', ?)
    `, id, filename, pages)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// UpdateResult фиксирует итоги реконструкции и синтеза меша.
func (r *Repository) UpdateResult(ctx context.Context, id, status string, floors, rooms, vertexCount, faceCount int) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE conversions
        SET status = ?, floors = ?, rooms = ?, vertex_count = ?, face_count = ?
        WHERE id = ?
    `, status, floors, rooms, vertexCount, faceCount, id)
	if err != nil {
		return fmt.Errorf("update conversion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID возвращает конверсию по идентификатору.
func (r *Repository) GetByID(ctx context.Context, id string) (*Conversion, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, filename, status, pages, floors, rooms, vertex_count, face_count, created_at
        FROM conversions
        WHERE id = ?
    `, id)

	var c Conversion
	if err := row.Scan(&c.ID, &c.Filename, &c.Status, &c.Pages, &c.Floors, &c.Rooms, &c.VertexCount, &c.FaceCount, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List возвращает конверсии, сначала новые.
func (r *Repository) List(ctx context.Context) ([]Conversion, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, filename, status, pages, floors, rooms, vertex_count, face_count, created_at
        FROM conversions
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.Filename, &c.Status, &c.Pages, &c.Floors, &c.Rooms, &c.VertexCount, &c.FaceCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
