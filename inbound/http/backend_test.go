package http

import (
	"bytes"
	"infinitech-web/outbound/backend"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// unreachableURL refuses connections, which the handlers report as a
// backend connectivity failure.
const unreachableURL = "http://127.0.0.1:1"

type recordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        string
}

// fakeBackend stands in for the external backend and records what the
// handlers send it. Tests swap Handler per case.
type fakeBackend struct {
	Server  *httptest.Server
	Handler http.HandlerFunc

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		handler := fb.Handler
		fb.mu.Unlock()

		if handler == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	return fb
}

func (fb *fakeBackend) Client() *backend.Client {
	return backend.NewClient(fb.Server.URL, 5*time.Second)
}

func (fb *fakeBackend) Reset(handler http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.Handler = handler
	fb.requests = nil
}

func (fb *fakeBackend) Requests() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	return append([]recordedRequest(nil), fb.requests...)
}

func (fb *fakeBackend) Close() {
	fb.Server.Close()
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// routes answers by "METHOD /path"; anything else is a 404.
func routes(table map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := table[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}
