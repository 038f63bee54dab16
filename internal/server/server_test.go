package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/lexorder/pkg/cache"
	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, nil)
	srv := httptest.NewServer(New(runner, Options{
		Workers: 2,
		Limits:  errors.Limits{MaxWords: 100},
	}).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", resp.StatusCode, body)
	}
}

func TestOrder(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/order", `{"words": ["bca", "aaa", "acb"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if want := []string{"b", "a", "c"}; !slices.Equal(got.Order, want) {
		t.Errorf("order = %q, want %q", got.Order, want)
	}
	if got.RunID == "" || got.Cached {
		t.Errorf("run_id = %q, cached = %v", got.RunID, got.Cached)
	}

	resp = post(t, srv.URL+"/v1/order", `{"words": ["bca", "aaa", "acb"]}`)
	var again orderResponse
	json.NewDecoder(resp.Body).Decode(&again)
	if !again.Cached {
		t.Error("second request should be served from cache")
	}
}

func TestOrderEmpty(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/order", `{"words": []}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	if order, ok := got["order"].([]any); !ok || len(order) != 0 {
		t.Errorf("order = %v, want []", got["order"])
	}
}

func TestOrderErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
		msg    string
	}{
		{"cycle", `{"words": ["x", "y", "z", "x"]}`, 422, errors.ErrCodeCycleDetected, "cycle detected at 'x'"},
		{"collision", `{"words": ["ab"]}`, 422, errors.ErrCodeRankCollision, "rank 1 of 'b' already assigned to 'a'"},
		{"malformed", `{"words": [`, 400, errors.ErrCodeInvalidInput, ""},
		{"unknown field", `{"word": ["a"]}`, 400, errors.ErrCodeInvalidInput, ""},
		{"missing words", `{}`, 400, errors.ErrCodeInvalidInput, "missing words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/order", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var got errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
			if tt.msg != "" && got.Error != tt.msg {
				t.Errorf("error = %q, want %q", got.Error, tt.msg)
			}
		})
	}
}

func TestOrderTooManyWords(t *testing.T) {
	srv := newTestServer(t)
	words := make([]string, 101)
	for i := range words {
		words[i] = "a"
	}
	body, _ := json.Marshal(map[string][]string{"words": words})
	resp := post(t, srv.URL+"/v1/order", string(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGraph(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/graph", `{"words": ["bca", "aaa", "acb"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "digraph G {") {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get("X-Inference-Error") != "" {
		t.Error("consistent input should not report an inference error")
	}
}

func TestGraphFailureHeader(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		body string
		want string
	}{
		{`{"words": ["ab"]}`, "rank 1 of 'b' already assigned to 'a'"},
		{`{"words": ["x", "y", "z", "x"]}`, "cycle detected at 'x'"},
	}
	for _, tt := range tests {
		// The repeat must report the failure too.
		for i := 0; i < 2; i++ {
			resp := post(t, srv.URL+"/v1/graph", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("%s request %d: status = %d, want 200", tt.body, i, resp.StatusCode)
			}
			if got := resp.Header.Get("X-Inference-Error"); got != tt.want {
				t.Errorf("%s request %d: X-Inference-Error = %q, want %q", tt.body, i, got, tt.want)
			}
		}
	}
}

func TestGraphDetailed(t *testing.T) {
	srv := newTestServer(t)
	body := `{"words": ["ab", "ac", "bc"]}`

	resp := post(t, srv.URL+"/v1/graph?detailed=true", body)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "chain 2") {
		t.Errorf("detailed graph: status = %d, body = %q", resp.StatusCode, data)
	}

	resp = post(t, srv.URL+"/v1/graph", body)
	data, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(data), "chain") {
		t.Errorf("plain graph carries detail labels: %q", data)
	}

	resp = post(t, srv.URL+"/v1/graph?detailed=maybe", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("detailed=maybe status = %d, want 400", resp.StatusCode)
	}
}

func TestGraphInvalidFormat(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/graph?format=png", `{"words": ["a"]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/order")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/order = %d, want 405", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeCycleDetected, 422},
		{errors.ErrCodeRankCollision, 422},
		{errors.ErrCodeInvalidInput, 400},
		{errors.ErrCodeInvalidFormat, 400},
		{errors.ErrCodeInternal, 500},
		{errors.ErrCodeCache, 500},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(pipeline.NewRunner(nil, nil, nil), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
