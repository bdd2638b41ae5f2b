package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock records requests and replays canned responses keyed by method and path.
type ApiMock struct {
	mu               sync.Mutex
	requestsReceived map[string][]map[string]any
	headersReceived  map[string][]map[string]string
	responseMap      map[string]map[int]any
	responseStatus   map[string]map[int]int
	defaultResponse  map[string]any
	defaultStatus    map[string]int
	server           *httptest.Server
	mockUrl          string
}

// NewApiServer creates an unstarted mock.
func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		headersReceived:  map[string][]map[string]string{},
		responseMap:      map[string]map[int]any{},
		responseStatus:   map[string]map[int]int{},
		defaultResponse:  map[string]any{},
		defaultStatus:    map[string]int{},
	}
}

// Start serves the mock on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	a.mockUrl = a.server.URL
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := r.Method + r.URL.Path
	index := len(a.requestsReceived[key])

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}
	a.requestsReceived[key] = append(a.requestsReceived[key], request)

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}
	a.headersReceived[key] = append(a.headersReceived[key], headers)

	status, response := a.responseFor(key, index)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	raw, _ := json.Marshal(response)
	_, _ = w.Write(raw)
}

func (a *ApiMock) responseFor(key string, index int) (int, any) {
	status := a.defaultStatus[key]
	if s, ok := a.responseStatus[key][index]; ok && s != 0 {
		status = s
	}
	// Return 200 as a safe default to prevent panic from WriteHeader(0)
	if status == 0 {
		status = http.StatusOK
	}

	response := a.defaultResponse[key]
	if r, ok := a.responseMap[key][index]; ok && r != nil {
		response = r
	}
	if response == nil {
		response = map[string]any{}
	}
	return status, response
}

// GetUrl returns the base URL of the running mock.
func (a *ApiMock) GetUrl() string {
	return a.mockUrl
}

// SetResponse sets the reply for the index-th call, or for every call when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaultStatus[key] = status
		a.defaultResponse[key] = response
		return
	}
	if a.responseMap[key] == nil {
		a.responseMap[key] = map[int]any{}
		a.responseStatus[key] = map[int]int{}
	}
	a.responseMap[key][index] = response
	a.responseStatus[key][index] = status
}

// RequestCount returns how many calls reached method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

// GetRequestBody returns the decoded body of the index-th call.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

// GetRequestHeaders returns the headers of the index-th call.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

// ClearResponses forgets recorded calls and per-call replies, keeping defaults.
func (a *ApiMock) ClearResponses() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]map[string]string{}
	a.responseMap = map[string]map[int]any{}
	a.responseStatus = map[string]map[int]int{}
}
