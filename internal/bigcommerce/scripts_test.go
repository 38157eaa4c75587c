package bigcommerce_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/secret"

	"github.com/stretchr/testify/require"
)

type fakeContentAPI struct {
	mu      sync.Mutex
	scripts []bigcommerce.Script
	calls   []string
	bodies  []map[string]any
}

func (f *fakeContentAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	check := func(r *http.Request) {
		require.Equal(t, "store-token", r.Header.Get("X-Auth-Token"))
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
	}
	mux.HandleFunc("/stores/abc123/v3/content/scripts", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"data": f.scripts})
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.bodies = append(f.bodies, body)
			w.WriteHeader(http.StatusOK)
		}
	})
	mux.HandleFunc("/stores/abc123/v3/content/scripts/", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		if r.Method == http.MethodPut {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.bodies = append(f.bodies, body)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/stores/abc123/v2/store", func(w http.ResponseWriter, r *http.Request) {
		check(r)
		_, _ = w.Write([]byte(`{"secure_url":"https://shop.example.com","name":"Shop"}`))
	})
	return mux
}

var testStore = bigcommerce.Store{Hash: "abc123", AccessToken: secret.New("store-token")}

func TestUpsertScript_CreatesWhenMissing(t *testing.T) {
	api := &fakeContentAPI{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	err := newTestClient(t, srv).UpsertScript(context.Background(), testStore, "widget", "<script></script>")
	require.NoError(t, err)
	require.Equal(t, []string{
		"GET /stores/abc123/v3/content/scripts",
		"POST /stores/abc123/v3/content/scripts",
	}, api.calls)

	body := api.bodies[0]
	require.Equal(t, "widget", body["name"])
	require.Equal(t, "script_tag", body["kind"])
	require.Equal(t, "footer", body["location"])
	require.Equal(t, "storefront", body["visibility"])
	require.Equal(t, "essential", body["consent_category"])
	require.Equal(t, true, body["auto_uninstall"])
}

func TestUpsertScript_UpdatesExisting(t *testing.T) {
	api := &fakeContentAPI{scripts: []bigcommerce.Script{
		{UUID: "u-1", Name: "other"},
		{UUID: "u-2", Name: "widget"},
	}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	err := newTestClient(t, srv).UpsertScript(context.Background(), testStore, "widget", "<script></script>")
	require.NoError(t, err)
	require.Equal(t, "PUT /stores/abc123/v3/content/scripts/u-2", api.calls[1])
}

func TestRemoveAllScripts(t *testing.T) {
	api := &fakeContentAPI{scripts: []bigcommerce.Script{{UUID: "u-1"}, {UUID: "u-2"}}}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	require.NoError(t, newTestClient(t, srv).RemoveAllScripts(context.Background(), testStore))
	require.Equal(t, []string{
		"GET /stores/abc123/v3/content/scripts",
		"DELETE /stores/abc123/v3/content/scripts/u-1",
		"DELETE /stores/abc123/v3/content/scripts/u-2",
	}, api.calls)
}

func TestStoreInformation(t *testing.T) {
	api := &fakeContentAPI{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	info, err := newTestClient(t, srv).StoreInformation(context.Background(), testStore)
	require.NoError(t, err)
	require.Equal(t, "https://shop.example.com", info.SecureURL)
}

func TestStoreCalls_FailOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).ListScripts(context.Background(), testStore)
	require.ErrorIs(t, err, bigcommerce.ErrTransport)
}
