package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// pathParam returns the unescaped path segment after prefix. A trailing
// slash is ignored; "" means the collection itself was requested.
func pathParam(r *http.Request, prefix string) (string, error) {
	raw := strings.TrimPrefix(r.URL.EscapedPath(), prefix)
	raw = strings.TrimPrefix(raw, "/")
	raw = strings.TrimSuffix(raw, "/")
	if strings.Contains(raw, "/") {
		return "", fmt.Errorf("unexpected path %q", r.URL.Path)
	}
	return url.PathUnescape(raw)
}

// handleVillains routes /villanos requests.
func (s *Server) handleVillains(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "/villanos")
	if err != nil {
		apiError(w, "not found", http.StatusNotFound)
		return
	}

	// /villanos: list or add
	if name == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListVillains(w)
		case http.MethodPost:
			s.apiAddVillain(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /villanos/{nombre}: show or remove
	switch r.Method {
	case http.MethodGet:
		s.apiGetVillain(w, name)
	case http.MethodDelete:
		s.apiDeleteVillain(w, name)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiListVillains(w http.ResponseWriter) {
	villains, err := s.villainRepo.List()
	if err != nil {
		apiError(w, fmt.Sprintf("listing villains: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, villains, http.StatusOK)
}

func (s *Server) apiAddVillain(w http.ResponseWriter, r *http.Request) {
	var v villain.Villain
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(v.Name) == "" {
		apiError(w, "nombre is required", http.StatusBadRequest)
		return
	}

	created, err := s.villainRepo.Insert(&v)
	if errors.Is(err, villain.ErrDuplicate) {
		apiError(w, fmt.Sprintf("villain %q already exists", strings.TrimSpace(v.Name)), http.StatusConflict)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("adding villain: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, created, http.StatusCreated)
}

func (s *Server) apiGetVillain(w http.ResponseWriter, name string) {
	v, err := s.villainRepo.GetByName(name)
	if errors.Is(err, villain.ErrNotFound) {
		apiError(w, "villain not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("loading villain: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, v, http.StatusOK)
}

func (s *Server) apiDeleteVillain(w http.ResponseWriter, name string) {
	err := s.villainRepo.DeleteByName(name)
	if errors.Is(err, villain.ErrNotFound) {
		apiError(w, "villain not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("deleting villain: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// handleComments routes /comentarios requests. The path segment is a
// villain for GET and a comment ID for PUT and DELETE.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "/comentarios")
	if err != nil {
		apiError(w, "not found", http.StatusNotFound)
		return
	}

	// /comentarios: create
	if id == "" {
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiAddComment(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.apiListComments(w, id)
	case http.MethodPut:
		s.apiUpdateComment(w, r, id)
	case http.MethodDelete:
		s.apiDeleteComment(w, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListComments returns a villain's comments. Unknown villains are a 404;
// a known villain without comments is an empty array.
func (s *Server) apiListComments(w http.ResponseWriter, villainName string) {
	ok, err := s.villainRepo.Exists(villainName)
	if err != nil {
		apiError(w, fmt.Sprintf("loading villain: %v", err), http.StatusInternalServerError)
		return
	}
	if !ok {
		apiError(w, "villain not found", http.StatusNotFound)
		return
	}

	comments, err := s.commentRepo.ListByVillain(villainName)
	if err != nil {
		apiError(w, fmt.Sprintf("listing comments: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, comments, http.StatusOK)
}

func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	var c comment.Comment
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	d := comment.Draft{Author: c.Author, Body: c.Body}
	if strings.TrimSpace(c.ParentID) == "" || d.Blank() {
		apiError(w, "villano, usuario and comentario are required", http.StatusBadRequest)
		return
	}

	ok, err := s.villainRepo.Exists(c.ParentID)
	if err != nil {
		apiError(w, fmt.Sprintf("loading villain: %v", err), http.StatusInternalServerError)
		return
	}
	if !ok {
		apiError(w, "villain not found", http.StatusNotFound)
		return
	}

	created, err := s.commentRepo.Add(c.ParentID, d)
	if err != nil {
		apiError(w, fmt.Sprintf("adding comment: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, created, http.StatusCreated)
}

func (s *Server) apiUpdateComment(w http.ResponseWriter, r *http.Request, id string) {
	var c comment.Comment
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	d := comment.Draft{Author: c.Author, Body: c.Body}
	if d.Blank() {
		apiError(w, "usuario and comentario are required", http.StatusBadRequest)
		return
	}

	updated, err := s.commentRepo.Update(id, d)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(w, "comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("updating comment: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, updated, http.StatusOK)
}

func (s *Server) apiDeleteComment(w http.ResponseWriter, id string) {
	err := s.commentRepo.Delete(id)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(w, "comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("deleting comment: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
