package tui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tinytelemetry/dataview/internal/backend"
	"github.com/tinytelemetry/dataview/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingFetcher struct {
	mu      sync.Mutex
	calls   int
	message string
	err     error
}

func (f *countingFetcher) FetchMessage(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.message, f.err
}

func (f *countingFetcher) Endpoint() string { return "http://backend.test/api/data" }

func (f *countingFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// drain runs cmd and any batched commands, returning the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// mountAndSettle runs Init and feeds every resulting message back to Update.
func mountAndSettle(v *DataView) {
	for _, msg := range drain(v.Init()) {
		v.Update(msg)
	}
}

func newTestView(f Fetcher, cfg model.ConfigValue) *DataView {
	return NewDataView(context.Background(), f, cfg, nil, ThemeFor(model.DefaultSkin))
}

func TestDataView_LoadingBeforeSettle(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{message: "hello"}
	v := newTestView(f, "v1")
	_ = v.Init()

	out := v.View(0, 0)
	if !strings.Contains(out, loadingText) {
		t.Errorf("view = %q, want loading indicator", out)
	}
	if strings.Contains(out, "Backend says:") {
		t.Errorf("view = %q, must not show message before settle", out)
	}
	if _, ok := v.State().(model.Loading); !ok {
		t.Errorf("state = %T, want Loading", v.State())
	}
	if f.Calls() != 0 {
		t.Errorf("fetch ran before its command executed")
	}
}

func TestDataView_Success(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{message: "hello"}
	v := newTestView(f, "v1")
	mountAndSettle(v)

	out := v.View(80, 24)
	if !strings.Contains(out, "Backend says: hello") {
		t.Errorf("view = %q, want success message", out)
	}
	if strings.Contains(out, loadingText) {
		t.Errorf("view = %q, loading indicator should be cleared", out)
	}
	if st, ok := v.State().(model.Loaded); !ok || st.Message != "hello" {
		t.Errorf("state = %#v, want Loaded(hello)", v.State())
	}
}

func TestDataView_FailureLogsDiagnostic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	f := &countingFetcher{err: errors.New("connection refused")}
	v := NewDataView(context.Background(), f, "v1", zap.New(core), ThemeFor(model.DefaultSkin))
	mountAndSettle(v)

	out := v.View(0, 0)
	if !strings.Contains(out, "Backend says: Error fetching data") {
		t.Errorf("view = %q, want placeholder", out)
	}
	if st, ok := v.State().(model.Failed); !ok || st.Placeholder != model.FetchErrorPlaceholder {
		t.Errorf("state = %#v, want Failed", v.State())
	}
	records := logs.FilterMessage("error fetching data").All()
	if len(records) != 1 {
		t.Fatalf("diagnostic records = %d, want 1", len(records))
	}
	fields := records[0].ContextMap()
	if fields["endpoint"] != f.Endpoint() {
		t.Errorf("endpoint field = %v, want %s", fields["endpoint"], f.Endpoint())
	}
	if fields["error"] != "connection refused" {
		t.Errorf("error field = %v, want connection refused", fields["error"])
	}
}

func TestDataView_LoadingClearedOnce(t *testing.T) {
	t.Parallel()

	for _, f := range []*countingFetcher{
		{message: "hello"},
		{err: errors.New("boom")},
	} {
		v := newTestView(f, "")
		mountAndSettle(v)
		before := v.State()

		// A late duplicate outcome must not change anything.
		v.Update(fetchResultMsg{message: "other"})
		v.Update(fetchResultMsg{err: errors.New("late")})

		if v.State() != before {
			t.Errorf("state changed after settle: %#v -> %#v", before, v.State())
		}
		if v.loadingShown != 1 || v.loadingCleared != 1 {
			t.Errorf("loading shown/cleared = %d/%d, want 1/1", v.loadingShown, v.loadingCleared)
		}
	}
}

func TestDataView_SpinnerStopsAfterSettle(t *testing.T) {
	t.Parallel()

	v := newTestView(&countingFetcher{message: "hello"}, "")
	var tick tea.Msg
	for _, msg := range drain(v.Init()) {
		if _, ok := msg.(fetchResultMsg); !ok {
			tick = msg
		}
	}
	if tick == nil {
		t.Fatal("Init did not start the spinner")
	}
	if cmd := v.Update(tick); cmd == nil {
		t.Error("spinner should keep ticking while loading")
	}

	v.Update(fetchResultMsg{message: "hello"})
	if cmd := v.Update(tick); cmd != nil {
		t.Error("spinner should stop once resolved")
	}
}

func TestDataView_ConfigDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "v1", want: "v1"},
		{raw: "", want: "Variable Not Provided ,Please Provide"},
	}
	for _, tt := range tests {
		v := newTestView(&countingFetcher{message: "hello"}, model.ResolveConfigValue(tt.raw))
		if out := v.View(0, 0); !strings.Contains(out, tt.want) {
			t.Errorf("loading view = %q, want config %q", out, tt.want)
		}
		mountAndSettle(v)
		if out := v.View(0, 0); !strings.Contains(out, tt.want) {
			t.Errorf("settled view = %q, want config %q", out, tt.want)
		}
	}
}

func TestDataView_OneRequestPerMount(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{message: "hello"}
	mountAndSettle(newTestView(f, ""))
	if got := f.Calls(); got != 1 {
		t.Fatalf("calls after first mount = %d, want 1", got)
	}

	mountAndSettle(newTestView(f, ""))
	if got := f.Calls(); got != 2 {
		t.Fatalf("calls after remount = %d, want 2", got)
	}
}

func TestDataView_AgainstBackend(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/api/data", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "hello"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL + "/api/data")
	v := newTestView(client, "v1")
	mountAndSettle(v)

	if out := v.View(0, 0); !strings.Contains(out, "Backend says: hello") {
		t.Errorf("view = %q, want backend message", out)
	}
	if n := client.Requests(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

func TestDataView_ConnectionRefused(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	v := newTestView(backend.NewClient("http://"+addr+"/api/data"), "")
	mountAndSettle(v)

	if out := v.View(0, 0); !strings.Contains(out, "Backend says: Error fetching data") {
		t.Errorf("view = %q, want placeholder", out)
	}
}

func TestRenderSettled(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{message: "hello"}
	got := RenderSettled(newTestView(f, "v1"))
	want := "Sample Project\nBackend says: hello\nv1\n"
	if got != want {
		t.Errorf("RenderSettled = %q, want %q", got, want)
	}
	if f.Calls() != 1 {
		t.Errorf("calls = %d, want 1", f.Calls())
	}
}

func TestDataView_StripsControlSequences(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{message: "\x1b[31mred\x1b[0m\a\x1b]0;title\x07 text\r"}
	got := RenderSettled(newTestView(f, "v1"))
	want := "Sample Project\nBackend says: red text\nv1\n"
	if got != want {
		t.Errorf("RenderSettled = %q, want %q", got, want)
	}

	v := newTestView(f, "")
	mountAndSettle(v)
	if out := v.View(0, 0); strings.Contains(out, "title") || strings.Contains(out, "\a") {
		t.Errorf("view = %q, want control sequences removed", out)
	}
}
