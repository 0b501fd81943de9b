package dnscli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
)

// apiCall is one request seen by fakeAPI.
type apiCall struct {
	Action string
	Host   string
	Header http.Header
	Body   string
}

// fakeAPI answers each action with a canned reply and records every call.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []apiCall
	replies map[string]string
	server  *httptest.Server
}

func newFakeAPI(t *testing.T, replies map[string]string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{replies: replies}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		action := r.Header.Get("X-TC-Action")

		f.mu.Lock()
		f.calls = append(f.calls, apiCall{Action: action, Host: r.Host, Header: r.Header.Clone(), Body: string(body)})
		reply, ok := f.replies[action]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{}`)
			return
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeAPI) Actions() []string {
	calls := f.Calls()
	actions := make([]string, 0, len(calls))
	for _, c := range calls {
		actions = append(actions, c.Action)
	}
	return actions
}

func (f *fakeAPI) profile() APIProfile {
	p := DefaultProfile()
	p.Endpoint = f.server.URL
	p.Timeout = 5 * time.Second
	return p
}

func fixedClock() time.Time {
	return time.Unix(testTimestamp, 0)
}

func newTestProvider(t *testing.T, replies map[string]string) (*DNSPodProvider, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t, replies)
	p := NewDNSPodProvider(testCredential(), "example.com", api.profile(), logr.Discard())
	p.transport.now = fixedClock
	return p, api
}
