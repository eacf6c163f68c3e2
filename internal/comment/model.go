// Package comment provides the comment domain model and data access.
package comment

import (
	"encoding/json"
	"strings"
	"time"
)

// Comment is a free-text note left on a villain.
type Comment struct {
	ID        string
	ParentID  string
	Author    string
	Body      string
	CreatedAt time.Time // zero when the backend sent no parsable date
	Edited    bool
}

// Draft is the author/body pair submitted by the create and edit forms.
type Draft struct {
	Author string
	Body   string
}

// Blank reports whether either field is empty after trimming.
func (d Draft) Blank() bool {
	return strings.TrimSpace(d.Author) == "" || strings.TrimSpace(d.Body) == ""
}

// wireComment is the record shape used by the REST API.
// Older records carry the body under "mensaje" instead of "comentario".
type wireComment struct {
	ID         string `json:"_id"`
	Villano    string `json:"villano,omitempty"`
	Usuario    string `json:"usuario"`
	Comentario string `json:"comentario,omitempty"`
	Mensaje    string `json:"mensaje,omitempty"`
	Fecha      string `json:"fecha,omitempty"`
	Editado    bool   `json:"editado,omitempty"`
}

// wireCommentIn is wireComment as read from a backend. fecha and editado
// are loosely typed there: fecha may be a string or epoch milliseconds.
type wireCommentIn struct {
	ID         string          `json:"_id"`
	Villano    string          `json:"villano"`
	Usuario    string          `json:"usuario"`
	Comentario string          `json:"comentario"`
	Mensaje    string          `json:"mensaje"`
	Fecha      json.RawMessage `json:"fecha"`
	Editado    json.RawMessage `json:"editado"`
}

// UnmarshalJSON maps the wire record onto Comment, folding the legacy
// body field into Body. A fecha or editado of an unexpected type is
// treated as missing rather than failing the record.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var w wireCommentIn
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	body := w.Comentario
	if body == "" {
		body = w.Mensaje
	}

	*c = Comment{
		ID:        w.ID,
		ParentID:  w.Villano,
		Author:    w.Usuario,
		Body:      body,
		CreatedAt: decodeDate(w.Fecha),
		Edited:    decodeEdited(w.Editado),
	}
	return nil
}

// decodeDate accepts a date string or epoch milliseconds.
func decodeDate(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseDate(s)
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}

func decodeEdited(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// MarshalJSON writes the canonical wire record.
func (c Comment) MarshalJSON() ([]byte, error) {
	w := wireComment{
		ID:         c.ID,
		Villano:    c.ParentID,
		Usuario:    c.Author,
		Comentario: c.Body,
		Editado:    c.Edited,
	}
	if !c.CreatedAt.IsZero() {
		w.Fecha = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	return json.Marshal(w)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a backend timestamp. Unparsable input yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
