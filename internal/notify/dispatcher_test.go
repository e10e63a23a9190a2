package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/lazyvibe/failbell/internal/model"
)

func testRecord() *model.AlertRecord {
	code := 2
	rec := model.NewAlertRecord("sess-1", model.AlertKindExitCode, "exited with code 2", time.Unix(1700000000, 0))
	rec.SessionName = "make"
	rec.ExitCode = &code
	rec.Excerpt = "make: *** [all] Error 2"
	return rec
}

func TestDispatchWebhook(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	d := NewDispatcher()
	if err := d.Dispatch(context.Background(), Config{WebhookURL: srv.URL}, testRecord()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got["title"] != "failbell: make" {
		t.Errorf("title = %v", got["title"])
	}
	if got["exitCode"] != float64(2) {
		t.Errorf("exitCode = %v", got["exitCode"])
	}
	if msg, _ := got["message"].(string); !strings.Contains(msg, "Error 2") {
		t.Errorf("message = %q", msg)
	}
}

func TestDispatchWebhookStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewDispatcher().Dispatch(context.Background(), Config{WebhookURL: srv.URL}, testRecord())
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("Dispatch = %v, want status error", err)
	}
}

func TestDispatchDesktop(t *testing.T) {
	d := NewDispatcher()
	var title, message string
	d.desktop = func(ti, m string) error {
		title, message = ti, m
		return errors.New("no dbus")
	}

	err := d.Dispatch(context.Background(), Config{Desktop: true}, testRecord())
	if err == nil || !strings.Contains(err.Error(), "no dbus") {
		t.Errorf("Dispatch = %v", err)
	}
	if title != "failbell: make" || !strings.HasPrefix(message, "exited with code 2") {
		t.Errorf("title=%q message=%q", title, message)
	}
}

func TestDispatchTruncatesByRune(t *testing.T) {
	d := NewDispatcher()
	var message string
	d.desktop = func(_, m string) error {
		message = m
		return nil
	}
	rec := testRecord()
	rec.Reason = "x"
	rec.Excerpt = strings.Repeat("é", 1000)

	if err := d.Dispatch(context.Background(), Config{Desktop: true}, rec); err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(message) {
		t.Fatal("message is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(message); got != maxMessageRunes+3 {
		t.Errorf("message runes = %d, want %d", got, maxMessageRunes+3)
	}
	if !strings.HasSuffix(message, "é...") {
		t.Errorf("message tail = %q", message[len(message)-8:])
	}

	if got := truncateRunes("héllo", 5); got != "héllo" {
		t.Errorf("truncateRunes at limit = %q", got)
	}
}

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("zero config should be disabled")
	}
	if !(Config{WebhookURL: "http://x"}).Enabled() {
		t.Error("webhook config should be enabled")
	}
}
