package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	mu      sync.Mutex
	sent    []map[string]string
	updates string
	status  int
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		f.sent = append(f.sent, payload)
		f.mu.Unlock()
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		_, _ = w.Write([]byte(f.updates))
	default:
		http.NotFound(w, r)
	}
}

func newTestNotifier(t *testing.T, api *fakeBotAPI) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("token", "42", "")
	n.APIURL = srv.URL
	return n
}

func TestSend(t *testing.T) {
	api := &fakeBotAPI{}
	n := newTestNotifier(t, api)

	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, "42", api.sent[0]["chat_id"])
	assert.Equal(t, "HTML", api.sent[0]["parse_mode"])
	assert.Equal(t, "<b>hi</b>", api.sent[0]["text"])
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	api := &fakeBotAPI{status: http.StatusBadRequest}
	n := newTestNotifier(t, api)

	err := n.SendWithRetry(context.Background(), "x", 0)
	assert.ErrorContains(t, err, "all 1 retries exhausted")
	assert.Len(t, api.sent, 1)
}

func TestSendWithRetry_CancelledContext(t *testing.T) {
	api := &fakeBotAPI{status: http.StatusInternalServerError}
	n := newTestNotifier(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, n.SendWithRetry(ctx, "x", 3))
}

func TestPoll_DispatchesCommands(t *testing.T) {
	api := &fakeBotAPI{updates: `{"ok":true,"result":[
		{"update_id":7,"message":{"text":" /status "}},
		{"update_id":8},
		{"update_id":9,"message":{"text":"/quiet"}}
	]}`}
	n := newTestNotifier(t, api)

	var got []string
	next, err := n.poll(context.Background(), n.Client, 0, func(cmd string) string {
		got = append(got, cmd)
		if cmd == "/status" {
			return "status reply"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/status", "/quiet"}, got)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "status reply", api.sent[0]["text"])
}

func TestPoll_BadJSON(t *testing.T) {
	api := &fakeBotAPI{updates: "nope"}
	n := newTestNotifier(t, api)

	next, err := n.poll(context.Background(), n.Client, 3, func(string) string { return "" })
	assert.ErrorContains(t, err, "decode polling response")
	assert.Equal(t, 3, next)
}
