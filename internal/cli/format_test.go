package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
		{"multibyte", "Señor Frío y más", 8, "Señor..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestPrintVillainTable(t *testing.T) {
	var buf bytes.Buffer
	villains := []*villain.Villain{
		{Name: "Joker", Franchise: "DC", Powers: []string{"Caos", "Ingenio"}, DefeatedBy: "Batman"},
		{Name: "Sin Datos"},
	}

	if err := printVillainTable(&buf, villains); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NOMBRE", "Joker", "Caos, Ingenio", "Batman", villain.UnknownFranchise, villain.NoPowers, "Total: 2 villanos"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintVillainTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printVillainTable(&buf, nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "No se encontraron villanos.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintCommentList(t *testing.T) {
	var buf bytes.Buffer
	comments := []*comment.Comment{
		{ID: "a1", Author: "Ana", Body: "Hola", CreatedAt: time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)},
		{ID: "b2", Author: "Luis", Body: "Editado", Edited: true},
	}

	printCommentList(&buf, comments, time.UTC)

	out := buf.String()
	for _, want := range []string{"2 comentarios", "[02/01/2024, 09:05] Ana", "#a1", "Luis (editado)", comment.UnknownDate} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintCommentListEmpty(t *testing.T) {
	var buf bytes.Buffer
	printCommentList(&buf, nil, time.UTC)

	if strings.TrimSpace(buf.String()) != "No hay comentarios aún" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
