package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/config"
	"github.com/muurk/mallas/internal/controller"
)

const sessionFormPage = `<html><body>
<form method="POST" action="/">
  <input type="number" name="R1" value="">
  <input type="number" name="V1" value="">
  <button type="submit" class="btn-calcular">Calcular</button>
</form>
</body></html>`

const sessionResultPage = `<html><body>
<form method="POST" action="/">
  <input type="number" name="R1" value="2">
  <input type="number" name="V1" value="12">
</form>
<div class="result-card"><span class="current-value">6 A</span></div>
</body></html>`

func newSessionBackend(t *testing.T, post http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			post(w, r)
			return
		}
		_, _ = w.Write([]byte(sessionFormPage))
	}))
	t.Cleanup(server.Close)
	return server
}

func openTestSession(t *testing.T, url string) *session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	client := backend.NewClient(url)
	client.RetryDelay = time.Millisecond
	s, err := openSession(ctx, client, t.TempDir())
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	t.Cleanup(s.close)
	return s
}

func TestSessionSubmitRejectsInvalidForm(t *testing.T) {
	server := newSessionBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not be posted")
	})
	s := openTestSession(t, server.URL)
	ctx := context.Background()

	err := s.submit(ctx)
	if !controller.IsValidationError(err) {
		t.Fatalf("submit() error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "R1, V1") {
		t.Errorf("error = %v, want the invalid field names", err)
	}
	if text, _ := s.banner(ctx); text == "" {
		t.Error("banner should be visible after an invalid submit")
	}
}

func TestSessionSubmitAttachesResultPage(t *testing.T) {
	server := newSessionBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("R1") != "2" || r.PostForm.Get("V1") != "12" {
			t.Errorf("posted %v", r.PostForm)
		}
		_, _ = w.Write([]byte(sessionResultPage))
	})
	s := openTestSession(t, server.URL)
	ctx := context.Background()

	if err := applyAssignments(ctx, s, []string{"R1=2", "V1=12"}); err != nil {
		t.Fatal(err)
	}
	if err := s.submit(ctx); err != nil {
		t.Fatalf("submit() error = %v", err)
	}

	results := s.page().ResultEntries()
	if len(results) != 1 || results[0].Text != "6 A" {
		t.Errorf("results = %+v", results)
	}

	path, data, err := s.export(ctx)
	if err != nil {
		t.Fatalf("export() error = %v", err)
	}
	if !strings.HasSuffix(path, controller.ExportFileName) || !strings.Contains(string(data), "Malla 1,6A") {
		t.Errorf("export = %s %q", path, data)
	}
}

func TestSessionSubmitShowsServerErrorPage(t *testing.T) {
	server := newSessionBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html><body><form method="POST" action="/"></form>
<div class="error-msg">Error al resolver el circuito</div></body></html>`))
	})
	s := openTestSession(t, server.URL)
	ctx := context.Background()

	if err := applyAssignments(ctx, s, []string{"R1=2", "V1=12"}); err != nil {
		t.Fatal(err)
	}
	if err := s.submit(ctx); err != nil {
		t.Fatalf("submit() error = %v, want the error page", err)
	}
	if got := s.page().ServerError; got != "Error al resolver el circuito" {
		t.Errorf("ServerError = %q", got)
	}
}

func TestApplyAssignmentsUnknownField(t *testing.T) {
	server := newSessionBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	s := openTestSession(t, server.URL)

	if err := applyAssignments(context.Background(), s, []string{"R9=1"}); err == nil {
		t.Error("applyAssignments() expected error for an unknown field")
	}
}

func TestPingStatus(t *testing.T) {
	settings = config.NewSettings()
	t.Cleanup(func() { settings = nil })

	server := newSessionBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	if got := pingStatus(context.Background(), server.URL); got != "reachable" {
		t.Errorf("pingStatus() = %q, want reachable", got)
	}

	server.Close()
	if got := pingStatus(context.Background(), server.URL); !strings.HasPrefix(got, "no response") {
		t.Errorf("pingStatus(closed) = %q", got)
	}
}
