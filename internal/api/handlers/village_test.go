package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-api-go/internal/catalog"
)

type fakeVillages struct {
	villages []catalog.Village
	err      error
}

func (f *fakeVillages) Villages(ctx context.Context) ([]catalog.Village, error) {
	return f.villages, f.err
}

func (f *fakeVillages) Village(ctx context.Context, slug string) (*catalog.Village, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.villages {
		if f.villages[i].Slug == slug {
			return &f.villages[i], nil
		}
	}
	return nil, nil
}

func TestVillageList(t *testing.T) {
	source := &fakeVillages{villages: []catalog.Village{
		{ID: 1, Name: "Avon", Slug: "avon"},
		{ID: 2, Name: "Hatteras Village", Slug: "hatteras-village"},
	}}
	handler := NewVillageHandler(source, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/villages", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Avon")
	assert.Contains(t, w.Body.String(), "hatteras-village")
}

func TestVillageGet(t *testing.T) {
	source := &fakeVillages{villages: []catalog.Village{
		{ID: 1, Name: "Avon", Slug: "avon"},
	}}
	handler := NewVillageHandler(source, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/villages/avon", nil)
	req = withURLParam(req, "slug", "avon")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Avon")
}

func TestVillageGetNotFound(t *testing.T) {
	handler := NewVillageHandler(&fakeVillages{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/villages/atlantis", nil)
	req = withURLParam(req, "slug", "atlantis")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "village not found")
}
