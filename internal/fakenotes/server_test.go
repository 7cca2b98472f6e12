package fakenotes

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notes "github.com/notesapp/notes.go"
)

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func titles(t *testing.T, data []byte) []string {
	t.Helper()

	var out []string
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		title, _ := jsonparser.GetString(value, "title")
		out = append(out, title)
	})
	require.NoError(t, err)
	return out
}

func TestServer(t *testing.T) {
	server := NewServer()
	server.Start()
	defer server.Close()

	assert.NotEmpty(t, server.URL())

	status, data := do(t, http.MethodGet, server.URL()+"/notes", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(data))
}

func TestServerCRUD(t *testing.T) {
	server := NewServer()
	server.Start()
	defer server.Close()

	status, data := do(t, http.MethodPost, server.URL()+"/notes", `{"title":"A","body":"x"}`)
	require.Equal(t, http.StatusCreated, status)

	id, err := jsonparser.GetString(data, "id")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, server.Len())

	status, data = do(t, http.MethodGet, server.URL()+"/notes/"+id, "")
	require.Equal(t, http.StatusOK, status)
	title, _ := jsonparser.GetString(data, "title")
	assert.Equal(t, "A", title)

	status, data = do(t, http.MethodPut, server.URL()+"/notes/"+id, `{"title":"B"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"`+id+`","title":"B"}`, string(data))

	status, data = do(t, http.MethodDelete, server.URL()+"/notes/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{}`, string(data))
	assert.Equal(t, 0, server.Len())

	status, _ = do(t, http.MethodDelete, server.URL()+"/notes/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodPut, server.URL()+"/notes/"+id, `{"title":"C"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServerRejectsNonObjectBodies(t *testing.T) {
	server := NewServer()
	server.Start()
	defer server.Close()

	for _, body := range []string{`[1,2]`, `"x"`, `null`, `{`} {
		status, _ := do(t, http.MethodPost, server.URL()+"/notes", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
	}
	assert.Equal(t, 0, server.Len())
}

func TestServerListing(t *testing.T) {
	server := NewServer()
	server.Seed(
		map[string]any{"id": 1, "title": "Groceries", "priority": 3},
		map[string]any{"id": 2, "title": "Gym", "priority": 10},
		map[string]any{"id": 3, "title": "Work log", "priority": 1},
	)
	server.Start()
	defer server.Close()

	tests := map[string]struct {
		query string
		want  []string
	}{
		"defaults": {
			query: "",
			want:  []string{"Groceries", "Gym", "Work log"},
		},
		"title filter is case-insensitive": {
			query: "title=g",
			want:  []string{"Groceries", "Gym", "Work log"},
		},
		"title filter narrows": {
			query: "title=gym",
			want:  []string{"Gym"},
		},
		"sort by number": {
			query: "sortBy=priority",
			want:  []string{"Work log", "Groceries", "Gym"},
		},
		"sort descending": {
			query: "sortBy=-title",
			want:  []string{"Work log", "Gym", "Groceries"},
		},
		"paging": {
			query: "page=2&limit=2",
			want:  []string{"Work log"},
		},
		"page past the end": {
			query: "page=5&limit=2",
			want:  nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			status, data := do(t, http.MethodGet, server.URL()+"/notes?"+tc.query, "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, tc.want, titles(t, data))
		})
	}

	for _, query := range []string{"page=0", "limit=-1", "page=abc"} {
		status, _ := do(t, http.MethodGet, server.URL()+"/notes?"+query, "")
		assert.Equal(t, http.StatusBadRequest, status, query)
	}
}

func TestServerSeedNumericID(t *testing.T) {
	server := NewServer()
	ids := server.Seed(map[string]any{"id": 7, "title": "seven"}, map[string]any{"title": "no id"})
	require.Len(t, ids, 2)
	assert.Equal(t, "7", ids[0])
	assert.NotEmpty(t, ids[1])

	server.Start()
	defer server.Close()

	status, data := do(t, http.MethodPut, server.URL()+"/notes/7", `{"title":"SEVEN"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":7,"title":"SEVEN"}`, string(data))
}

func TestServerStubResponse(t *testing.T) {
	server := NewServer()
	server.AddStubResponse(StubResponse{
		Matcher:    RequestMatcher{Method: http.MethodPost, Path: "/notes"},
		StatusCode: http.StatusBadRequest,
		Body:       `{"error":"title required"}`,
	})
	server.Start()
	defer server.Close()

	status, data := do(t, http.MethodPost, server.URL()+"/notes", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"title required"}`, string(data))
	assert.Equal(t, 0, server.Len())

	// other routes are untouched
	status, _ = do(t, http.MethodGet, server.URL()+"/notes", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestServerFailures(t *testing.T) {
	t.Run("forced status", func(t *testing.T) {
		server := NewServer()
		server.SetGlobalFailures([]FailureConfig{
			{Type: FailureStatus, Probability: 1, StatusCode: http.StatusServiceUnavailable},
		})
		server.Start()
		defer server.Close()

		status, _ := do(t, http.MethodGet, server.URL()+"/notes", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})

	t.Run("request delay", func(t *testing.T) {
		server := NewServer()
		server.SetGlobalFailures([]FailureConfig{
			{Type: FailureRequestDelay, Probability: 1, MinDelay: 50 * time.Millisecond, MaxDelay: 60 * time.Millisecond},
		})
		server.Start()
		defer server.Close()

		start := time.Now()
		status, _ := do(t, http.MethodGet, server.URL()+"/notes", "")
		assert.Equal(t, http.StatusOK, status)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero probability never fires", func(t *testing.T) {
		server := NewServer()
		server.SetGlobalFailures([]FailureConfig{
			{Type: FailureStatus, Probability: 0, StatusCode: http.StatusInternalServerError},
		})
		server.Start()
		defer server.Close()

		status, _ := do(t, http.MethodGet, server.URL()+"/notes", "")
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("dropped connection", func(t *testing.T) {
		server := NewServer()
		server.SetGlobalFailures([]FailureConfig{{Type: FailureDropConnection, Probability: 1}})
		server.Start()
		defer server.Close()

		_, err := http.Get(server.URL() + "/notes")
		require.Error(t, err)
	})
}

func TestServerRecordsRequests(t *testing.T) {
	server := NewServer()
	server.Start()
	defer server.Close()

	client := notes.NewClient(server.URL())
	_, err := client.CreateNote(context.Background(), notes.Data{"title": "x"})
	require.NoError(t, err)

	req, ok := server.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/notes", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "x", body["title"])
	assert.Contains(t, body, "createdAt")

	assert.Len(t, server.Requests(), 1)
}
