package fakenotes

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Seed stores notes directly, bypassing HTTP, and returns their ids.
// A note without an "id" gets a fresh UUID.
func (s *Server) Seed(notes ...map[string]any) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		fields := make(map[string]json.RawMessage, len(n)+1)
		for k, v := range n {
			raw, err := json.Marshal(v)
			if err != nil {
				panic(err)
			}
			fields[k] = raw
		}
		id := idOf(fields)
		if id == "" {
			id = uuid.NewString()
			fields["id"] = quote(id)
		}
		s.put(id, fields)
		ids = append(ids, id)
	}
	return ids
}

// Note returns the stored JSON of a note.
func (s *Server) Note(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.notes[id]
	return raw, ok
}

// Len returns the number of stored notes.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := positiveInt(query.Get("page"), 1)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid page")
		return
	}
	limit, err := positiveInt(query.Get("limit"), 10)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	title := strings.ToLower(query.Get("title"))

	s.mu.RLock()
	matched := make([][]byte, 0, len(s.order))
	for _, id := range s.order {
		raw := s.notes[id]
		if title != "" {
			got, _ := jsonparser.GetString(raw, "title")
			if !strings.Contains(strings.ToLower(got), title) {
				continue
			}
		}
		matched = append(matched, raw)
	}
	s.mu.RUnlock()

	if sortBy := query.Get("sortBy"); sortBy != "" {
		sortNotes(matched, sortBy)
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(bytes.Join(matched[start:end], []byte(",")))
	buf.WriteByte(']')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeObject(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	fields["id"] = quote(id)

	s.mu.Lock()
	raw := s.put(id, fields)
	s.mu.Unlock()

	respondRaw(w, http.StatusCreated, raw)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.Note(idFromPath(r))
	if !ok {
		respondError(w, r, http.StatusNotFound, "note not found")
		return
	}
	respondRaw(w, http.StatusOK, raw)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := idFromPath(r)
	fields, ok := decodeObject(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	old, exists := s.notes[id]
	if !exists {
		s.mu.Unlock()
		respondError(w, r, http.StatusNotFound, "note not found")
		return
	}
	if v, dataType, _, err := jsonparser.Get(old, "id"); err == nil && dataType == jsonparser.String {
		fields["id"] = quote(string(v))
	} else if err == nil {
		fields["id"] = v
	}
	raw := s.put(id, fields)
	s.mu.Unlock()

	respondRaw(w, http.StatusOK, raw)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := idFromPath(r)

	s.mu.Lock()
	_, exists := s.notes[id]
	if exists {
		delete(s.notes, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !exists {
		respondError(w, r, http.StatusNotFound, "note not found")
		return
	}
	respondRaw(w, http.StatusOK, []byte("{}"))
}

// put stores fields under id. The caller holds s.mu.
func (s *Server) put(id string, fields map[string]json.RawMessage) []byte {
	raw, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	if _, exists := s.notes[id]; !exists {
		s.order = append(s.order, id)
	}
	s.notes[id] = raw
	return raw
}

func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "unreadable body")
		return nil, false
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		respondError(w, r, http.StatusBadRequest, "body must be a JSON object")
		return nil, false
	}
	return fields, true
}

// idOf reads a string or numeric id from decoded fields.
func idOf(fields map[string]json.RawMessage) string {
	raw, ok := fields["id"]
	if !ok {
		return ""
	}
	v, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String, jsonparser.Number:
		return string(v)
	}
	return ""
}

// sortNotes orders raw notes by a field. A leading "-" reverses the order.
// Numbers compare numerically, everything else as text.
func sortNotes(notes [][]byte, sortBy string) {
	desc := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")

	sort.SliceStable(notes, func(i, j int) bool {
		a, aType, _, _ := jsonparser.Get(notes[i], field)
		b, bType, _, _ := jsonparser.Get(notes[j], field)
		if desc {
			a, b, aType, bType = b, a, bType, aType
		}
		if aType == jsonparser.Number && bType == jsonparser.Number {
			af, _ := jsonparser.ParseFloat(a)
			bf, _ := jsonparser.ParseFloat(b)
			return af < bf
		}
		return string(a) < string(b)
	})
}

func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func quote(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}

func respondRaw(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}
