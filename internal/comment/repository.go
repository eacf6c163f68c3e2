package comment

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a comment id does not exist.
var ErrNotFound = errors.New("comment not found")

// Repository provides CRUD operations for comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, villain, author, body, edited, created_at`

// Add creates a new comment on a villain.
func (r *Repository) Add(villain string, d Draft) (*Comment, error) {
	if d.Blank() {
		return nil, fmt.Errorf("comment author and text are required")
	}

	id := uuid.NewString()
	_, err := r.db.Exec(
		"INSERT INTO comments (id, villain, author, body) VALUES (?, ?, ?, ?)",
		id, villain, strings.TrimSpace(d.Author), strings.TrimSpace(d.Body),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a single comment.
func (r *Repository) GetByID(id string) (*Comment, error) {
	row := r.db.QueryRow("SELECT "+selectColumns+" FROM comments WHERE id = ?", id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading comment %s: %w", id, err)
	}
	return c, nil
}

// ListByVillain returns all comments for a villain in insertion order.
func (r *Repository) ListByVillain(villain string) ([]*Comment, error) {
	rows, err := r.db.Query(
		"SELECT "+selectColumns+" FROM comments WHERE villain = ? ORDER BY rowid ASC",
		villain,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Update replaces author and text and marks the comment as edited.
func (r *Repository) Update(id string, d Draft) (*Comment, error) {
	if d.Blank() {
		return nil, fmt.Errorf("comment author and text are required")
	}

	result, err := r.db.Exec(
		"UPDATE comments SET author = ?, body = ?, edited = 1 WHERE id = ?",
		strings.TrimSpace(d.Author), strings.TrimSpace(d.Body), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(id)
}

// Delete removes a comment by ID.
func (r *Repository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
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

func scanComment(row interface{ Scan(...interface{}) error }) (*Comment, error) {
	var c Comment
	var edited int
	if err := row.Scan(&c.ID, &c.ParentID, &c.Author, &c.Body, &edited, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Edited = edited != 0
	return &c, nil
}
