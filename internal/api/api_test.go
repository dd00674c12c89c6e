package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lbehrens/powerset/pkg/pipeline"
	"github.com/lbehrens/powerset/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	s := NewServer(pipeline.NewRunner(nil, nil, logger), store.NewMemoryStore(), logger)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

const sampleBody = `{
  "start": [0],
  "accept": [2],
  "alphabet": ["a", "b"],
  "transitions": [
    {"from": 0, "symbol": "a", "to": 0},
    {"from": 0, "symbol": "b", "to": 0},
    {"from": 0, "symbol": "b", "to": 1},
    {"from": 1, "symbol": "a", "to": 2}
  ]
}`

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestDeterminizeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/determinize", sampleBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decodeBody[machineResponse](t, resp)

	if len(got.Machine.Transitions) != 6 {
		t.Errorf("got %d transitions, want 6", len(got.Machine.Transitions))
	}
	if len(got.Machine.Accept) != 1 {
		t.Errorf("got %d accept states, want 1", len(got.Machine.Accept))
	}
}

func TestDeterminizeRejectsEpsilonAlphabet(t *testing.T) {
	ts := newTestServer(t)

	body := `{"alphabet": ["a", "eps"], "transitions": []}`
	resp := postJSON(t, ts.URL+"/determinize", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	envelope := decodeBody[errorEnvelope](t, resp)
	if envelope.Code != "INVALID_ALPHABET" {
		t.Errorf("code = %s, want INVALID_ALPHABET", envelope.Code)
	}
}

func TestDeterminizeRejectsBadJSON(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/determinize", "{not json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMachineLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Create
	resp := postJSON(t, ts.URL+"/machines", sampleBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody[machineResponse](t, resp)
	if created.ID == "" {
		t.Fatal("created machine has no id")
	}

	// Get
	resp, err := http.Get(ts.URL + "/machines/" + created.ID)
	if err != nil {
		t.Fatalf("GET machine: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	fetched := decodeBody[machineResponse](t, resp)
	if len(fetched.Machine.Transitions) != 6 {
		t.Errorf("fetched machine has %d transitions, want 6", len(fetched.Machine.Transitions))
	}

	// List
	resp, err = http.Get(ts.URL + "/machines")
	if err != nil {
		t.Fatalf("GET machines: %v", err)
	}
	listed := decodeBody[[]machineResponse](t, resp)
	if len(listed) != 1 {
		t.Errorf("list returned %d machines, want 1", len(listed))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/machines/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE machine: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	// Gone
	resp, err = http.Get(ts.URL + "/machines/" + created.ID)
	if err != nil {
		t.Fatalf("GET machine: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", resp.StatusCode)
	}
	envelope := decodeBody[errorEnvelope](t, resp)
	if envelope.Code != "MACHINE_NOT_FOUND" {
		t.Errorf("code = %s, want MACHINE_NOT_FOUND", envelope.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "test-id-42" {
		t.Errorf("X-Request-ID = %q, want test-id-42", got)
	}
}
