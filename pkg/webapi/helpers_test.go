package webapi_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/stretchr/testify/require"
)

const (
	testKey     = "0123456789ABCDEF0123456789ABCDEF"
	testSteamID = "76561198099490962"
)

type fixture struct {
	status int
	body   string
}

func ok(body string) fixture {
	return fixture{status: http.StatusOK, body: body}
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()

	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return ok(string(body))
}

// upstream is a fake api serving canned responses by request path.
type upstream struct {
	mu       sync.Mutex
	requests []*http.Request
	forms    []url.Values
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.requests)
}

func (u *upstream) last(t *testing.T) (*http.Request, url.Values) {
	t.Helper()

	u.mu.Lock()
	defer u.mu.Unlock()

	require.NotEmpty(t, u.requests)

	return u.requests[len(u.requests)-1], u.forms[len(u.forms)-1]
}

func newTestClient(t *testing.T, routes map[string]fixture, opts ...webapi.Option) (*webapi.Client, *upstream) {
	t.Helper()

	recorder := &upstream{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		recorder.mu.Lock()
		recorder.requests = append(recorder.requests, r)
		recorder.forms = append(recorder.forms, r.Form)
		recorder.mu.Unlock()

		route, found := routes[r.URL.Path]
		if !found {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(route.status)
		_, _ = w.Write([]byte(route.body))
	}))
	t.Cleanup(server.Close)

	options := append([]webapi.Option{
		webapi.WithKey(testKey),
		webapi.WithBaseURL(server.URL),
		webapi.WithCommunityURL(server.URL),
		webapi.WithHTTPClient(server.Client()),
	}, opts...)

	client, err := webapi.New(options...)
	require.NoError(t, err)

	return client, recorder
}
