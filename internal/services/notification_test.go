package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ismaelfarah/studenttrack/internal/models"
	"github.com/ismaelfarah/studenttrack/internal/storage"
)

// botServer records sendMessage calls made against a fake Bot API.
type botServer struct {
	mu       sync.Mutex
	requests []sendMessageRequest
	paths    []string
	status   int
}

func newBotServer() (*botServer, *httptest.Server) {
	bs := &botServer{status: http.StatusOK}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req sendMessageRequest
		_ = json.Unmarshal(body, &req)

		bs.mu.Lock()
		bs.requests = append(bs.requests, req)
		bs.paths = append(bs.paths, r.URL.Path)
		status := bs.status
		bs.mu.Unlock()

		w.WriteHeader(status)
		if status == http.StatusOK {
			io.WriteString(w, `{"ok":true}`)
		} else {
			io.WriteString(w, `{"ok":false,"description":"Bad Request: can't parse entities"}`)
		}
	}))
	return bs, srv
}

func (bs *botServer) failWith(status int) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.status = status
}

func (bs *botServer) calls() []sendMessageRequest {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return append([]sendMessageRequest(nil), bs.requests...)
}

func configuredService(t *testing.T, apiBase string) (*TelegramService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewTelegramService(store, apiBase)
	err := svc.SaveConfig(&models.NotificationConfig{Token: "123:abc", ChatID: "42"})
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	return svc, store
}

func TestDispatchSendsMessage(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	svc, _ := configuredService(t, srv.URL)
	svc.Dispatch(models.EventProjectCreated, baseProject(), nil)

	calls := bs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(calls))
	}
	req := calls[0]
	if req.ChatID != "42" {
		t.Errorf("chat_id = %q, want 42", req.ChatID)
	}
	if req.ParseMode != "MarkdownV2" {
		t.Errorf("parse_mode = %q, want MarkdownV2", req.ParseMode)
	}
	if !strings.Contains(req.Text, "*New Project Added*") {
		t.Errorf("unexpected message text: %q", req.Text)
	}
	if bs.paths[0] != "/bot123:abc/sendMessage" {
		t.Errorf("request path = %q", bs.paths[0])
	}
}

func TestDispatchAttachesKeyboard(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	svc, _ := configuredService(t, srv.URL)
	p := baseProject()
	p.GithubLink = "https://github.com/omar/library"
	svc.Dispatch(models.EventProjectCreated, p, nil)

	calls := bs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(calls))
	}
	markup := calls[0].ReplyMarkup
	if markup == nil || len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("expected one keyboard button, got %+v", markup)
	}
	if markup.InlineKeyboard[0][0].URL != p.GithubLink {
		t.Errorf("button url = %q", markup.InlineKeyboard[0][0].URL)
	}
}

func TestDispatchSkipsWhenNotConfigured(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	store := storage.NewMemoryStore()
	svc := NewTelegramService(store, srv.URL)
	svc.Dispatch(models.EventProjectCreated, baseProject(), nil)

	if len(bs.calls()) != 0 {
		t.Errorf("expected no sends without configuration, got %d", len(bs.calls()))
	}
}

func TestDispatchSkipsDisabledEvent(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	svc, _ := configuredService(t, srv.URL)
	err := svc.SaveConfig(&models.NotificationConfig{
		Token:  "123:abc",
		ChatID: "42",
		Notifications: map[models.NotificationEvent]bool{
			models.EventProjectDeleted: false,
		},
	})
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	svc.Dispatch(models.EventProjectDeleted, baseProject(), nil)
	if len(bs.calls()) != 0 {
		t.Errorf("expected no sends for disabled event, got %d", len(bs.calls()))
	}

	// Other events keep their enabled default.
	svc.Dispatch(models.EventProjectCreated, baseProject(), nil)
	if len(bs.calls()) != 1 {
		t.Errorf("expected 1 send for enabled event, got %d", len(bs.calls()))
	}
}

func TestDispatchSkipsEmptyDetailUpdate(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	svc, _ := configuredService(t, srv.URL)
	svc.Dispatch(models.EventDetailsUpdated, baseProject(), &DispatchContext{Changes: &ChangeSet{}})

	if len(bs.calls()) != 0 {
		t.Errorf("expected no sends for an empty diff, got %d", len(bs.calls()))
	}
}

func TestDispatchSwallowsAPIError(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()
	bs.failWith(http.StatusBadRequest)

	svc, _ := configuredService(t, srv.URL)
	// Must not panic or propagate anything.
	svc.Dispatch(models.EventProjectCreated, baseProject(), nil)

	if len(bs.calls()) != 1 {
		t.Errorf("expected the send to be attempted, got %d", len(bs.calls()))
	}
}

func TestConfigDefaultsAndRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewTelegramService(store, "")

	cfg, err := svc.Config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config before first save, got %+v", cfg)
	}

	if err := svc.SaveConfig(&models.NotificationConfig{Token: "t", ChatID: "c"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cfg, err = svc.Config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ev := range models.NotificationEvents() {
		if !cfg.Enabled(ev) {
			t.Errorf("event %s must default to enabled", ev)
		}
	}
}

func TestConfigDiscardsUnreadableData(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set(storage.KeyTelegramConfig, []byte("{not json")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := NewTelegramService(store, "")
	cfg, err := svc.Config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("unreadable config must read as absent, got %+v", cfg)
	}
	if _, ok, _ := store.Get(storage.KeyTelegramConfig); ok {
		t.Error("unreadable config must be deleted from the store")
	}
}

func TestTestConnection(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()

	svc := NewTelegramService(storage.NewMemoryStore(), srv.URL)

	if err := svc.TestConnection("", ""); err == nil {
		t.Error("expected error for missing credentials")
	}
	if err := svc.TestConnection("999:xyz", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := bs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(calls))
	}
	if calls[0].ChatID != "7" {
		t.Errorf("chat_id = %q, want 7", calls[0].ChatID)
	}
	if bs.paths[0] != "/bot999:xyz/sendMessage" {
		t.Errorf("request path = %q", bs.paths[0])
	}
}

func TestSendReportsAPIError(t *testing.T) {
	bs, srv := newBotServer()
	defer srv.Close()
	bs.failWith(http.StatusBadRequest)

	svc, _ := configuredService(t, srv.URL)
	err := svc.Send("hello", nil)
	if err == nil {
		t.Fatal("expected error for failing API")
	}
	if !strings.Contains(err.Error(), "can't parse entities") {
		t.Errorf("error must carry the API description, got %v", err)
	}
}
