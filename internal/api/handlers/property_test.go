package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/pms"
	"catalog-api-go/internal/search"
)

// withURLParam attaches a chi route parameter to a request built outside
// a chi router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type fakeCatalog struct {
	properties map[string]*catalog.Property
	featured   []catalog.Property
	similar    map[string][]catalog.Property
	err        error
}

func (f *fakeCatalog) Property(ctx context.Context, ref string) (*catalog.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.properties[ref], nil
}

func (f *fakeCatalog) Featured(ctx context.Context, limit int) ([]catalog.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.featured) {
		return f.featured[:limit], nil
	}
	return f.featured, nil
}

func (f *fakeCatalog) Similar(ctx context.Context, ref string, limit int) ([]catalog.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.similar[ref], nil
}

func sampleProperty() *catalog.Property {
	return &catalog.Property{
		ID:       "prop-7",
		Slug:     "pelican-watch",
		Name:     "Pelican Watch",
		Bedrooms: 5,
		BaseRate: 450,
		Village:  catalog.VillageSummary{Name: "Avon", Slug: "avon"},
	}
}

func TestPropertyGet(t *testing.T) {
	service := &fakeCatalog{properties: map[string]*catalog.Property{"prop-7": sampleProperty()}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-7", nil)
	req = withURLParam(req, "ref", "prop-7")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pelican Watch")
	assert.Contains(t, w.Body.String(), "pelican-watch")
}

func TestPropertyGetNotFound(t *testing.T) {
	service := &fakeCatalog{properties: map[string]*catalog.Property{}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-999", nil)
	req = withURLParam(req, "ref", "prop-999")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "property not found")
}

func TestPropertyGetUpstreamFailure(t *testing.T) {
	service := &fakeCatalog{err: &pms.UpstreamError{StatusCode: http.StatusServiceUnavailable}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-7", nil)
	req = withURLParam(req, "ref", "prop-7")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream property system error")
}

func TestPropertyListDelegatesToEngine(t *testing.T) {
	engine := &fakeEngine{result: &search.Result{
		Properties:  []catalog.Property{*sampleProperty()},
		Total:       41,
		Page:        2,
		PageSize:    20,
		HasNextPage: true,
	}}
	handler := NewPropertyHandler(&fakeCatalog{}, engine, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?village=avon&petFriendly=true&page=2", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "avon", engine.lastCriteria.VillageSlug)
	require.NotNil(t, engine.lastCriteria.PetFriendly)
	assert.True(t, *engine.lastCriteria.PetFriendly)
	assert.Equal(t, 2, engine.lastCriteria.Page)
	assert.Contains(t, w.Body.String(), `"total":41`)
	assert.Contains(t, w.Body.String(), `"hasNextPage":true`)
}

func TestPropertyListRejectsBadPetFriendly(t *testing.T) {
	handler := NewPropertyHandler(&fakeCatalog{}, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?petFriendly=maybe", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPropertyFeatured(t *testing.T) {
	service := &fakeCatalog{featured: []catalog.Property{*sampleProperty()}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/featured", nil)
	w := httptest.NewRecorder()

	handler.HandleFeatured(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pelican Watch")
}

func TestPropertySimilar(t *testing.T) {
	service := &fakeCatalog{similar: map[string][]catalog.Property{
		"prop-7": {*sampleProperty()},
	}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-7/similar", nil)
	req = withURLParam(req, "ref", "prop-7")
	w := httptest.NewRecorder()

	handler.HandleSimilar(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pelican Watch")
}

func TestPropertySimilarUnknownSource(t *testing.T) {
	service := &fakeCatalog{similar: map[string][]catalog.Property{}}
	handler := NewPropertyHandler(service, &fakeEngine{}, 12, 10, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-999/similar", nil)
	req = withURLParam(req, "ref", "prop-999")
	w := httptest.NewRecorder()

	handler.HandleSimilar(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
