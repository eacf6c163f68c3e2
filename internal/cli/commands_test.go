package cli

import (
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/db"
	"github.com/evcraddock/villainapp/internal/villain"
	"github.com/evcraddock/villainapp/internal/web"
)

// testBackend starts the development API over a fresh database.
func testBackend(t *testing.T) (string, *sql.DB) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VA_API_URL", "")

	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	ts := httptest.NewServer(web.NewServer(d).Handler())
	t.Cleanup(ts.Close)

	return ts.URL, d
}

func seedVillain(t *testing.T, d *sql.DB, name, franchise string) {
	t.Helper()
	if _, err := villain.NewRepository(d).Insert(&villain.Villain{Name: name, Franchise: franchise}); err != nil {
		t.Fatalf("seed villain: %v", err)
	}
}

func seedComment(t *testing.T, d *sql.DB, villainName, author, body string) *comment.Comment {
	t.Helper()
	c, err := comment.NewRepository(d).Add(villainName, comment.Draft{Author: author, Body: body})
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

func TestListCommand(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")
	seedVillain(t, d, "Thanos", "Marvel")

	out, err := executeCommand("list", "--server", url)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Joker") || !strings.Contains(out, "Thanos") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSearchCommand(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")
	seedVillain(t, d, "Thanos", "Marvel")

	out, err := executeCommand("search", "marv", "--by", "franquicia", "--server", url, "--format", "json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var got []*villain.Villain
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 1 || got[0].Name != "Thanos" {
		t.Errorf("matches = %+v", got)
	}
}

func TestAddAndShowCommands(t *testing.T) {
	url, _ := testBackend(t)

	out, err := executeCommand("add",
		"--nombre", "Magneto", "--franquicia", "Marvel",
		"--poderes", "Magnetismo, Liderazgo", "--derrotado-por", "X-Men",
		"--server", url)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "¡Villano añadido con éxito!") {
		t.Errorf("unexpected add output:\n%s", out)
	}

	out, err = executeCommand("show", "Magneto", "--server", url)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Magneto", "Magnetismo, Liderazgo", "X-Men", "No hay comentarios aún"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
}

func TestAddDuplicate(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	_, err := executeCommand("add", "--nombre", "Joker", "--server", url)
	if err == nil {
		t.Fatal("expected error for duplicate villain")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestShowUnknownVillain(t *testing.T) {
	url, _ := testBackend(t)

	if _, err := executeCommand("show", "Nadie", "--server", url); err == nil {
		t.Fatal("expected error for unknown villain")
	}
}

func TestRemoveCommand(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	out, err := executeCommandWithInput("s\n", "remove", "Joker", "--server", url)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "El villano Joker ha sido eliminado con éxito") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := executeCommand("remove", "Joker", "--yes", "--server", url); err == nil {
		t.Fatal("expected error removing a missing villain")
	}
}

func TestCommentsCommand(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")
	seedComment(t, d, "Joker", "Ana", "Primero")

	out, err := executeCommand("comments", "Joker", "--server", url)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if !strings.Contains(out, "1 comentario") || !strings.Contains(out, "Primero") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCommentsUnknownVillainIsEmpty(t *testing.T) {
	url, _ := testBackend(t)

	out, err := executeCommand("comments", "Nadie", "--server", url)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if !strings.Contains(out, "No hay comentarios aún") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCommentsServerDown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand("comments", "Joker", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error when server is unreachable")
	}
	if !strings.Contains(err.Error(), "No se pudieron cargar los comentarios") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommentAddEditDelete(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	out, err := executeCommand("comment", "add", "Joker", "Muy", "malo", "-u", "Ana", "--server", url)
	if err != nil {
		t.Fatalf("comment add: %v", err)
	}
	if !strings.Contains(out, "Comentario agregado.") || !strings.Contains(out, "Muy malo") {
		t.Errorf("unexpected add output:\n%s", out)
	}

	comments, err := comment.NewRepository(d).ListByVillain("Joker")
	if err != nil || len(comments) != 1 {
		t.Fatalf("stored comments = %v, %v", comments, err)
	}
	id := comments[0].ID

	out, err = executeCommand("comment", "edit", "Joker", id, "--texto", "Peor", "--server", url)
	if err != nil {
		t.Fatalf("comment edit: %v", err)
	}
	if !strings.Contains(out, "Ana (editado)") || !strings.Contains(out, "Peor") {
		t.Errorf("unexpected edit output:\n%s", out)
	}

	out, err = executeCommand("comment", "delete", "Joker", id, "--server", url)
	if err != nil {
		t.Fatalf("comment delete: %v", err)
	}
	if !strings.Contains(out, "No hay comentarios aún") {
		t.Errorf("unexpected delete output:\n%s", out)
	}
}

func TestCommentAddMissingAuthor(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	_, err := executeCommand("comment", "add", "Joker", "Hola", "--server", url)
	if err == nil {
		t.Fatal("expected error without author")
	}
	if err.Error() != "Por favor complete todos los campos" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommentEditUnknownID(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	_, err := executeCommand("comment", "edit", "Joker", "missing", "-t", "x", "--server", url)
	if err == nil {
		t.Fatal("expected error for unknown comment")
	}
}

func TestCommentDeleteUnknownID(t *testing.T) {
	url, d := testBackend(t)
	seedVillain(t, d, "Joker", "DC")

	_, err := executeCommand("comment", "delete", "Joker", "missing", "--server", url)
	if err == nil {
		t.Fatal("expected error for unknown comment")
	}
	if !strings.Contains(err.Error(), "No se pudo eliminar") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	url, _ := testBackend(t)

	out, err := executeCommand("status", "--server", url)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "✓ connected") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = executeCommand("status", "--server", "http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("status unreachable: %v", err)
	}
	if !strings.Contains(out, "cannot reach server") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
