// Package fakenotes provides an in-memory notes REST server for tests.
//
// It serves the same resource family the client talks to:
//
//	GET    /notes?title=&sortBy=&page=&limit=
//	POST   /notes
//	GET    /notes/{id}
//	PUT    /notes/{id}
//	DELETE /notes/{id}
//
// Notes are kept as raw JSON objects and get a random UUID on creation.
// Stub responses replace the default handling for matching requests, and
// failure configs inject delays, forced statuses, garbage bodies or dropped
// connections. Every request is recorded for later assertions.
package fakenotes

import (
	"bytes"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// FailureType represents the type of failure to inject during request processing
type FailureType string

const (
	// FailureNone indicates no failure injection
	FailureNone FailureType = "none"
	// FailureRequestDelay delays before processing the request
	FailureRequestDelay FailureType = "request_delay"
	// FailureStatus answers with FailureConfig.StatusCode and an error body
	FailureStatus FailureType = "status"
	// FailureInvalidResponse answers 200 with a body that is not JSON
	FailureInvalidResponse FailureType = "invalid_response"
	// FailureDropConnection closes the connection without answering
	FailureDropConnection FailureType = "drop_connection"
)

// RequestMatcher selects requests by method and path.
// Empty fields match anything.
type RequestMatcher struct {
	Method string
	Path   string
	// Matcher is an optional extra predicate.
	Matcher func(r *http.Request) bool
}

func (m RequestMatcher) match(r *http.Request) bool {
	if m.Method != "" && m.Method != r.Method {
		return false
	}
	if m.Path != "" && m.Path != r.URL.Path {
		return false
	}
	return m.Matcher == nil || m.Matcher(r)
}

// StubResponse is a canned answer for matching requests.
type StubResponse struct {
	Matcher    RequestMatcher
	StatusCode int
	Body       string
	// Failures are checked before the stub answers
	Failures []FailureConfig
}

// FailureConfig defines how and when to inject a specific failure type
type FailureConfig struct {
	Type FailureType
	// Probability of triggering this failure (0.0 to 1.0)
	Probability float64
	// MinDelay and MaxDelay bound FailureRequestDelay
	MinDelay time.Duration
	MaxDelay time.Duration
	// StatusCode is used by FailureStatus, 500 when zero
	StatusCode int
}

// Request is a recorded incoming request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Server is a fake notes service.
type Server struct {
	mu             sync.RWMutex
	router         *mux.Router
	notes          map[string][]byte
	order          []string
	stubResponses  []StubResponse
	globalFailures []FailureConfig
	requests       []Request
	httpServer     *httptest.Server
}

// NewServer creates a server with an empty store. Use it directly as an
// http.Handler, or call Start to listen on a random local port.
func NewServer() *Server {
	s := &Server{
		notes: make(map[string][]byte),
	}

	r := mux.NewRouter()
	r.HandleFunc("/notes", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/notes", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/notes/{id}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/notes/{id}", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/notes/{id}", s.handleDelete).Methods(http.MethodDelete)
	s.router = r

	return s
}

// Start begins serving on 127.0.0.1 with a random port.
func (s *Server) Start() {
	s.httpServer = httptest.NewServer(s)
}

// URL is the base URL of a started server.
func (s *Server) URL() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.URL
}

// Close stops a started server.
func (s *Server) Close() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

// AddStubResponse adds a stub response configuration to the server.
// Stub responses are matched in the order they were added.
func (s *Server) AddStubResponse(stub StubResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = append(s.stubResponses, stub)
}

// SetGlobalFailures sets failure configurations that apply to all requests.
// These are checked before stub-specific failures.
func (s *Server) SetGlobalFailures(failures []FailureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalFailures = failures
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if there was none.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	globalFailures := s.globalFailures
	var matchedStub *StubResponse
	for i := range s.stubResponses {
		if s.stubResponses[i].Matcher.match(r) {
			stub := s.stubResponses[i]
			matchedStub = &stub
			break
		}
	}
	s.mu.Unlock()

	for _, failure := range globalFailures {
		if shouldTriggerFailure(failure.Probability) && applyFailure(w, r, failure) {
			return
		}
	}

	if matchedStub != nil {
		for _, failure := range matchedStub.Failures {
			if shouldTriggerFailure(failure.Probability) && applyFailure(w, r, failure) {
				return
			}
		}
		status := matchedStub.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		if matchedStub.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, matchedStub.Body)
		return
	}

	s.router.ServeHTTP(w, r)
}

func shouldTriggerFailure(probability float64) bool {
	if probability >= 1 {
		return true
	}
	return probability > 0 && rand.Float64() < probability
}

// applyFailure injects failure and reports whether the request was answered.
func applyFailure(w http.ResponseWriter, r *http.Request, failure FailureConfig) bool {
	switch failure.Type {
	case FailureRequestDelay:
		delay := failure.MinDelay
		if spread := failure.MaxDelay - failure.MinDelay; spread > 0 {
			delay += time.Duration(rand.Int63n(int64(spread)))
		}
		time.Sleep(delay)
		return false
	case FailureStatus:
		status := failure.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		respondError(w, r, status, "injected failure")
		return true
	case FailureInvalidResponse:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "<html>not json</html>")
		return true
	case FailureDropConnection:
		hj, ok := w.(http.Hijacker)
		if !ok {
			respondError(w, r, http.StatusInternalServerError, "connection cannot be dropped")
			return true
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
		return true
	}
	return false
}

// idFromPath extracts the trailing id for requests mux routed to /notes/{id}.
func idFromPath(r *http.Request) string {
	if id, ok := mux.Vars(r)["id"]; ok {
		return id
	}
	return strings.TrimPrefix(r.URL.Path, "/notes/")
}
