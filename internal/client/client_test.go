package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

func TestListComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/comentarios/Joker" {
			t.Errorf("path = %q, want /comentarios/Joker", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`[
			{"_id":"1","usuario":"Ana","comentario":"Hola","fecha":"2024-01-01T10:00:00Z"},
			{"_id":"2","usuario":"Luis","mensaje":"Legado","editado":true}
		]`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	comments, err := c.ListComments("Joker")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Body != "Hola" || comments[1].Body != "Legado" {
		t.Errorf("bodies = %q, %q", comments[0].Body, comments[1].Body)
	}
	if !comments[1].Edited {
		t.Error("expected second comment edited")
	}
}

func TestListCommentsEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/comentarios/Darth%20Vader" {
			t.Errorf("escaped path = %q", r.URL.EscapedPath())
		}
		if _, err := w.Write([]byte(`[]`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListComments("Darth Vader"); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestListCommentsNonArrayPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"message":"ok"}`},
		{"null", `null`},
		{"empty body", ``},
		{"string", `"nada"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Fatalf("write: %v", err)
				}
			}))
			defer srv.Close()

			comments, err := New(srv.URL).ListComments("Joker")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if comments == nil || len(comments) != 0 {
				t.Errorf("comments = %#v, want empty slice", comments)
			}
		})
	}
}

func TestListCommentsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"sin comentarios"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListComments("Joker")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Msg != "sin comentarios" {
		t.Errorf("msg = %q", se.Msg)
	}
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListComments("Joker")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsNotFound(err) {
		t.Error("500 should not be reported as not found")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("err = %v, want 500 StatusError", err)
	}
}

func TestCreateComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/comentarios" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req["villano"] != "Joker" || req["usuario"] != "Ana" || req["comentario"] != "Hola" {
			t.Errorf("body = %v", req)
		}
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte("not json at all")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	if err := New(srv.URL).CreateComment("Joker", comment.Draft{Author: "Ana", Body: "Hola"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestUpdateComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/comentarios/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := req["villano"]; ok {
			t.Error("update should not send villano")
		}
		if req["usuario"] != "Ana" || req["comentario"] != "Editado" {
			t.Errorf("body = %v", req)
		}
	}))
	defer srv.Close()

	if err := New(srv.URL).UpdateComment("abc", comment.Draft{Author: "Ana", Body: "Editado"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDeleteComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/comentarios/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteComment("abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestVillainEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/villanos":
			_, _ = w.Write([]byte(`[{"nombre":"Joker","franquicia":"DC","poderes":["caos"]}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/villanos/Joker":
			_, _ = w.Write([]byte(`{"nombre":"Joker","franquicia":"DC","derrotado_por":"Batman"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/villanos":
			var v villain.Villain
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				t.Fatalf("decode: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(v)
		case r.Method == http.MethodDelete && r.URL.Path == "/villanos/Joker":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	list, err := c.ListVillains()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Joker" {
		t.Errorf("list = %+v", list)
	}

	v, err := c.GetVillain("Joker")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.DefeatedBy != "Batman" {
		t.Errorf("defeated by = %q", v.DefeatedBy)
	}

	created, err := c.CreateVillain(&villain.Villain{Name: "Thanos", Franchise: "Marvel", Powers: []string{"guantelete"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Thanos" || len(created.Powers) != 1 {
		t.Errorf("created = %+v", created)
	}

	if err := c.DeleteVillain("Joker"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).ListComments("Joker")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if IsNotFound(err) {
		t.Error("transport error should not be not-found")
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://example.com/api/")
	if c.BaseURL() != "http://example.com/api" {
		t.Errorf("base url = %q", c.BaseURL())
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	if err := New(srv.URL).Health(); err != nil {
		t.Fatalf("health: %v", err)
	}
	if err := New(srv.URL + "/prefix").Health(); !IsNotFound(err) {
		t.Errorf("expected not found for wrong base URL, got %v", err)
	}
}

func TestListCommentsNumericDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"1","usuario":"Ana","comentario":"Hola","fecha":1704103200000}]`))
	}))
	defer srv.Close()

	comments, err := New(srv.URL).ListComments("Joker")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !comments[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", comments[0].CreatedAt, want)
	}
}
