package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/petgallery/internal/petstore"
)

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateRequiresNameAndSpecies(t *testing.T) {
	h := New(Options{})

	w := serve(t, h, http.MethodPost, "/mingoy/pets", `{"name":"Rex"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, h, http.MethodPost, "/mingoy/pets", `{"name":"Rex","species":"Dog","id":99}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
}

func TestBulkCreateSkipsIncompleteRecords(t *testing.T) {
	repo := NewRepository()
	h := New(Options{Repository: repo})

	w := serve(t, h, http.MethodPost, "/mingoy/pets/bulk",
		`[{"name":"Rex","species":"Dog"},{"name":"NoSpecies"},{"name":"Mia","species":"Cat","id":40}]`)
	require.Equal(t, http.StatusCreated, w.Code)

	var saved []petstore.Pet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 2)
	assert.Equal(t, "Rex", saved[0].Name)
	assert.Equal(t, int64(1), saved[0].IDValue())
	assert.Equal(t, "Mia", saved[1].Name)
	assert.Equal(t, int64(2), saved[1].IDValue())
	assert.Equal(t, 2, repo.Len())
}

func TestBulkCreateRejectsEmptyBody(t *testing.T) {
	h := New(Options{})

	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/mingoy/pets/bulk", `[]`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/mingoy/pets/bulk", ``).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/mingoy/pets/bulk", `{"name":"Rex"}`).Code)
}

func TestUpdateAndDeleteAnswerWithText(t *testing.T) {
	repo := NewRepository(petstore.Pet{Name: "Rex", Species: "Dog"})
	h := New(Options{Repository: repo})

	w := serve(t, h, http.MethodPut, "/mingoy/pets/1", `{"name":"Rexy","species":"Dog"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pet with id 1 updated.", w.Body.String())

	w = serve(t, h, http.MethodPut, "/mingoy/pets/7", `{"name":"Ghost","species":"Dog"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pet with ID 7 not found.", w.Body.String())

	w = serve(t, h, http.MethodDelete, "/mingoy/pets/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pet with id 1 deleted.", w.Body.String())

	w = serve(t, h, http.MethodDelete, "/mingoy/pets/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, repo.Len())
}

func TestGetMissingAndBadID(t *testing.T) {
	h := New(Options{BasePath: "/api/"})

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/api/pets/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/api/pets/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/mingoy/pets", "").Code)
}

func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(New(Options{Repository: NewRepository(SeedPets()...)}))
	defer srv.Close()

	client, err := petstore.NewClient(srv.URL + DefaultBasePath)
	require.NoError(t, err)
	ctx := context.Background()

	pets, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, pets, len(SeedPets()))

	created, err := client.Create(ctx, petstore.Pet{Name: "Nala", Species: "Cat", Price: 80})
	require.NoError(t, err)
	require.True(t, created.HasID())
	assert.Equal(t, int64(len(SeedPets())+1), created.IDValue())

	edited := created.Clone()
	edited.Breed = "Tabby"
	updated, err := client.Update(ctx, created.IDValue(), edited)
	require.NoError(t, err)
	assert.Equal(t, "Tabby", updated.Breed)
	assert.Equal(t, created.IDValue(), updated.IDValue())

	got, err := client.Get(ctx, created.IDValue())
	require.NoError(t, err)
	assert.Equal(t, "Tabby", got.Breed)

	require.NoError(t, client.Delete(ctx, created.IDValue()))

	_, err = client.Get(ctx, created.IDValue())
	require.Error(t, err)
	assert.True(t, petstore.IsNotFound(err))

	err = client.Delete(ctx, created.IDValue())
	assert.True(t, petstore.IsNotFound(err))
}
