package villain

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no villain has the requested name.
	ErrNotFound = errors.New("villain not found")
	// ErrDuplicate is returned when a villain with the same name exists.
	ErrDuplicate = errors.New("villain already exists")
)

// Repository provides CRUD operations for villains.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a villain repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, franchise, powers_json, defeated_by, image, created_at`

// Insert adds a new villain and returns it with its generated ID.
func (r *Repository) Insert(v *Villain) (*Villain, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return nil, fmt.Errorf("villain name is required")
	}

	powers := v.Powers
	if powers == nil {
		powers = []string{}
	}
	powersJSON, err := json.Marshal(powers)
	if err != nil {
		return nil, fmt.Errorf("encoding powers: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO villains (id, name, franchise, powers_json, defeated_by, image) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), name, strings.TrimSpace(v.Franchise), string(powersJSON),
		strings.TrimSpace(v.DefeatedBy), strings.TrimSpace(v.Image),
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("inserting villain: %w", err)
	}

	return r.GetByName(name)
}

// GetByName returns a villain by its exact name.
func (r *Repository) GetByName(name string) (*Villain, error) {
	row := r.db.QueryRow("SELECT "+selectColumns+" FROM villains WHERE name = ?", name)

	v, err := scanVillain(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying villain %q: %w", name, err)
	}

	return v, nil
}

// Exists reports whether a villain with the given name exists.
func (r *Repository) Exists(name string) (bool, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM villains WHERE name = ?", name).Scan(&n); err != nil {
		return false, fmt.Errorf("checking villain %q: %w", name, err)
	}
	return n > 0, nil
}

// List returns all villains in the order they were added.
func (r *Repository) List() ([]*Villain, error) {
	rows, err := r.db.Query("SELECT " + selectColumns + " FROM villains ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("listing villains: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	villains := make([]*Villain, 0)
	for rows.Next() {
		v, err := scanVillain(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning villain: %w", err)
		}
		villains = append(villains, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating villains: %w", err)
	}

	return villains, nil
}

// DeleteByName removes a villain and, by cascade, its comments.
func (r *Repository) DeleteByName(name string) error {
	result, err := r.db.Exec("DELETE FROM villains WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting villain: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// scanVillain scans a villain from a database row.
func scanVillain(row interface{ Scan(...interface{}) error }) (*Villain, error) {
	var v Villain
	var powersJSON string
	err := row.Scan(&v.ID, &v.Name, &v.Franchise, &powersJSON, &v.DefeatedBy, &v.Image, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.Powers = decodePowers(json.RawMessage(powersJSON))
	return &v, nil
}
