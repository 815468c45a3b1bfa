package petstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL+"/" {
		t.Fatalf("default = %q, want %q", u.String(), DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("example.com:1234/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error for missing host")
	}
}

type recordedRequest struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	Agent     string
}

func newRecordingServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recordedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      string(body),
			RequestID: r.Header.Get("X-Request-Id"),
			Agent:     r.Header.Get("User-Agent"),
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/mingoy")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), seen...)
	}
}

func TestClient_CRUDRequestShapes(t *testing.T) {
	t.Parallel()

	c, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/mingoy/pets":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]Pet{{ID: ID(1), Name: "Rex", Species: "Dog", Price: 50}})
		case r.Method == http.MethodGet && r.URL.Path == "/mingoy/pets/1":
			_ = json.NewEncoder(w).Encode(Pet{ID: ID(1), Name: "Rex", Species: "Dog"})
		case r.Method == http.MethodPost && r.URL.Path == "/mingoy/pets":
			var in Pet
			_ = json.NewDecoder(r.Body).Decode(&in)
			in.ID = ID(7)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodPut && r.URL.Path == "/mingoy/pets/7":
			_, _ = w.Write([]byte("Pet with id 7 updated."))
		case r.Method == http.MethodDelete && r.URL.Path == "/mingoy/pets/7":
			_, _ = w.Write([]byte("Pet with id 7 deleted."))
		default:
			http.NotFound(w, r)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	pets, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(pets) != 1 || pets[0].IDValue() != 1 || pets[0].PriceLabel() != "$50.00" {
		t.Fatalf("List = %#v, want one pet id=1 priced $50.00", pets)
	}

	got, err := c.Get(ctx, 1)
	if err != nil || got.Name != "Rex" {
		t.Fatalf("Get = %#v, %v; want Rex", got, err)
	}

	created, err := c.Create(ctx, Pet{ID: ID(99), Name: "Mia", Species: "Cat", Price: 20})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.IDValue() != 7 || created.Name != "Mia" {
		t.Fatalf("Create = %#v, want id=7 Mia", created)
	}

	updated, err := c.Update(ctx, 7, Pet{Name: "Mia", Species: "Cat", Price: 25})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.IDValue() != 7 || updated.Price != 25 {
		t.Fatalf("Update = %#v, want submitted record with id 7", updated)
	}

	if err := c.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	seen := requests()
	if len(seen) != 5 {
		t.Fatalf("requests = %d, want 5", len(seen))
	}
	if strings.Contains(seen[2].Body, `"id"`) {
		t.Fatalf("create body = %s, want no id", seen[2].Body)
	}
	if !strings.Contains(seen[3].Body, `"id":7`) {
		t.Fatalf("update body = %s, want id 7", seen[3].Body)
	}
	ids := map[string]bool{}
	for _, r := range seen {
		if r.RequestID == "" {
			t.Fatalf("%s %s missing X-Request-Id", r.Method, r.Path)
		}
		ids[r.RequestID] = true
		if !strings.HasPrefix(r.Agent, "petgallery/") {
			t.Fatalf("User-Agent = %q, want petgallery/*", r.Agent)
		}
	}
	if len(ids) != len(seen) {
		t.Fatalf("request ids not unique: %v", ids)
	}
}

func TestClient_UpdateDecodesJSONBody(t *testing.T) {
	t.Parallel()

	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Server","species":"Dog","price":3}`))
	})

	got, err := c.Update(context.Background(), 4, Pet{Name: "Local"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "Server" || got.IDValue() != 4 {
		t.Fatalf("Update = %#v, want server record with id 4", got)
	}
}

func TestClient_FailuresAreRemoteStoreErrors(t *testing.T) {
	t.Parallel()

	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPut:
			http.Error(w, "Pet with ID 3 not found.", http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	_, err := c.List(context.Background())
	var rse *RemoteStoreError
	if !errors.As(err, &rse) || rse.Op != "list" || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode RemoteStoreError", err)
	}

	_, err = c.Update(context.Background(), 3, Pet{Name: "x"})
	if !IsNotFound(err) {
		t.Fatalf("Update error = %v, want 404 RemoteStoreError", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("Update error = %q, want body text", err.Error())
	}

	err = c.Delete(context.Background(), 3)
	if !errors.As(err, &rse) || rse.StatusCode != http.StatusInternalServerError || rse.Op != "delete" {
		t.Fatalf("Delete error = %v, want status 500 RemoteStoreError", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	var rse *RemoteStoreError
	if !errors.As(err, &rse) {
		t.Fatalf("List error = %v, want RemoteStoreError", err)
	}
	if rse.StatusCode != 0 || rse.RequestID == "" {
		t.Fatalf("RemoteStoreError = %#v, want no status and a request id", rse)
	}
}
