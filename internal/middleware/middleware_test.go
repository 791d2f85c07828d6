package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/wispgen/pkg/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logging.Configure(&buf, "debug", "json")
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "given-id" || rec.Header().Get(RequestIDHeader) != "given-id" {
		t.Errorf("expected incoming id to be reused, got %q", seen)
	}
}

func TestRecovery(t *testing.T) {
	buf := captureLogs(t)
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RequestID, Recovery)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crash", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	lines := logLines(t, buf)
	if len(lines) != 1 || lines[0]["msg"] != "panic recovered" || lines[0]["request_id"] == nil {
		t.Errorf("unexpected logs: %v", lines)
	}
}

func TestRequestLogger(t *testing.T) {
	buf := captureLogs(t)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), RequestID, RequestLogger)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))

	lines := logLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %v", lines)
	}
	got := lines[0]
	if got["level"] != "WARN" || got["status"] != float64(404) || got["query"] != "x=1" {
		t.Errorf("unexpected log entry: %v", got)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	buf := captureLogs(t)

	mux := http.NewServeMux()
	mux.Handle("/test.v1.T/Ok", connect.NewUnaryHandler("/test.v1.T/Ok",
		func(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
			return connect.NewResponse(&emptypb.Empty{}), nil
		}, connect.WithInterceptors(LoggingInterceptor())))
	mux.Handle("/test.v1.T/Missing", connect.NewUnaryHandler("/test.v1.T/Missing",
		func(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("nope"))
		}, connect.WithInterceptors(LoggingInterceptor())))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	ok := connect.NewClient[emptypb.Empty, emptypb.Empty](srv.Client(), srv.URL+"/test.v1.T/Ok")
	if _, err := ok.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{})); err != nil {
		t.Fatalf("Ok failed: %v", err)
	}
	missing := connect.NewClient[emptypb.Empty, emptypb.Empty](srv.Client(), srv.URL+"/test.v1.T/Missing")
	if _, err := missing.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{})); connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	lines := logLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %v", lines)
	}
	if lines[0]["msg"] != "RPC ok" || lines[1]["msg"] != "RPC error" || lines[1]["level"] != "WARN" {
		t.Errorf("unexpected logs: %v", lines)
	}
}
