// Package testutil provides testing utilities for the orders dashboard.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock trade API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockTradeAPI is a configurable mock trade API server for testing.
type MockTradeAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	requestCount   int
	pathCounts     map[string]int
	lastAuthHeader string
}

// NewMockTradeAPI creates a new mock trade API server.
func NewMockTradeAPI() *MockTradeAPI {
	mock := &MockTradeAPI{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.pathCounts[r.URL.Path]++
		mock.lastAuthHeader = r.Header.Get("Authorization")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockTradeAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockTradeAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockTradeAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pathCounts = make(map[string]int)
	m.lastAuthHeader = ""
}

// SetHandler sets a custom handler for a specific path.
func (m *MockTradeAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockTradeAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetOrderDetail configures the detail endpoint for one order id.
func (m *MockTradeAPI) SetOrderDetail(id string, resp MockResponse) {
	m.SetResponse("/orders/"+id, resp)
}

// SetOrderList configures the list endpoint response.
func (m *MockTradeAPI) SetOrderList(resp MockResponse) {
	m.SetResponse("/orders", resp)
}

// SetPayResponse configures the mark-paid endpoint for one order id.
func (m *MockTradeAPI) SetPayResponse(id string, resp MockResponse) {
	m.SetResponse("/orders/"+id+"/pay", resp)
}

// GetRequestCount returns the total number of requests made to the server.
func (m *MockTradeAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// GetPathCount returns the number of requests made to a specific path.
func (m *MockTradeAPI) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// GetDetailCount returns the number of detail fetches for one order id.
func (m *MockTradeAPI) GetDetailCount(id string) int {
	return m.GetPathCount("/orders/" + id)
}

// GetLastAuthHeader returns the Authorization header of the last request.
func (m *MockTradeAPI) GetLastAuthHeader() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAuthHeader
}

// defaultHandler responds 404 for unconfigured paths.
func (m *MockTradeAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error": "not found"}`))
}

// NewDetailResponse creates a 200 OK detail body with the given payment terms.
func NewDetailResponse(id string, amount float64, terms ...string) MockResponse {
	list := ""
	for i := 0; i < len(terms); i += 2 {
		if list != "" {
			list += ","
		}
		accountNo := ""
		if i+1 < len(terms) {
			accountNo = terms[i+1]
		}
		list += fmt.Sprintf(`{"bankName":%q,"accountNo":%q}`, terms[i], accountNo)
	}

	return MockResponse{
		StatusCode: http.StatusOK,
		Body: fmt.Sprintf(`{"id":%q,"amount":%v,"status":"pending","side":"sell","paymentTermList":[%s]}`,
			id, amount, list),
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"error": "order not found"}`,
	}
}
