package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-api-go/internal/pms"
)

type fakePMS struct {
	units       []pms.Unit
	images      []pms.Image
	unitErr     error
	searchCalls []pms.SearchParams
}

func (f *fakePMS) FetchUnit(ctx context.Context, id int) (*pms.Unit, error) {
	if f.unitErr != nil {
		return nil, f.unitErr
	}
	for _, unit := range f.units {
		if unit.ID == id {
			u := unit
			return &u, nil
		}
	}
	return nil, &pms.UpstreamError{StatusCode: 404, Body: `{"error":"not found"}`}
}

func (f *fakePMS) SearchUnits(ctx context.Context, params pms.SearchParams, page, pageSize int) ([]pms.Unit, int, error) {
	f.searchCalls = append(f.searchCalls, params)
	matched := make([]pms.Unit, 0, len(f.units))
	for _, unit := range f.units {
		if params.Bedrooms != nil && unit.Bedrooms != *params.Bedrooms {
			continue
		}
		matched = append(matched, unit)
	}
	if len(matched) > pageSize {
		matched = matched[:pageSize]
	}
	return matched, len(matched), nil
}

func (f *fakePMS) FetchUnitImages(ctx context.Context, id, limit int) ([]pms.Image, error) {
	return f.images, nil
}

type fakeNodes struct {
	nodes map[int]Village
}

func (f *fakeNodes) NodesMap(ctx context.Context) (map[int]Village, error) {
	return f.nodes, nil
}

func testService(units ...pms.Unit) (*Service, *fakePMS) {
	client := &fakePMS{units: units}
	nodes := &fakeNodes{nodes: map[int]Village{
		1: {ID: 1, Name: "Avon", Slug: "avon"},
		2: {ID: 2, Name: "Salvo", Slug: "salvo"},
	}}
	return NewService(client, nodes, nil), client
}

func TestPropertyByID(t *testing.T) {
	svc, _ := testService(pms.Unit{ID: 7, NodeID: 1, Name: "Sea Breeze", Bedrooms: 4})

	for _, ref := range []string{"prop-7", "7"} {
		property, err := svc.Property(context.Background(), ref)
		require.NoError(t, err)
		require.NotNil(t, property)
		assert.Equal(t, "prop-7", property.ID)
		assert.Equal(t, "avon", property.Village.Slug)
	}
}

func TestPropertyNotFoundIsNil(t *testing.T) {
	svc, _ := testService()

	property, err := svc.Property(context.Background(), "prop-99")
	require.NoError(t, err)
	assert.Nil(t, property)
}

func TestPropertyUpstreamErrorSurfaced(t *testing.T) {
	client := &fakePMS{unitErr: &pms.UpstreamError{StatusCode: 500, Body: "boom"}}
	svc := NewService(client, &fakeNodes{nodes: map[int]Village{}}, nil)

	_, err := svc.Property(context.Background(), "prop-7")
	require.Error(t, err)
	var upstreamErr *pms.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 500, upstreamErr.StatusCode)
}

func TestPropertyBySlug(t *testing.T) {
	svc, _ := testService(
		pms.Unit{ID: 7, NodeID: 1, Name: "Sea Breeze"},
		pms.Unit{ID: 8, NodeID: 2, Name: "Dune Deck"},
	)

	property, err := svc.Property(context.Background(), "dune-deck")
	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Equal(t, "prop-8", property.ID)

	missing, err := svc.Property(context.Background(), "no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPropertyFetchesGalleryWhenListingHasNoImages(t *testing.T) {
	client := &fakePMS{
		units:  []pms.Unit{{ID: 7, NodeID: 1, Name: "Sea Breeze"}},
		images: []pms.Image{{URL: "https://img.example.com/a.jpg"}, {URL: "https://img.example.com/b.jpg"}},
	}
	svc := NewService(client, &fakeNodes{nodes: map[int]Village{}}, nil)

	property, err := svc.Property(context.Background(), "prop-7")
	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Len(t, property.Images, 2)
}

func TestFeatured(t *testing.T) {
	svc, _ := testService(
		pms.Unit{ID: 1, NodeID: 1, Name: "One"},
		pms.Unit{ID: 2, NodeID: 1, Name: "Two"},
		pms.Unit{ID: 3, NodeID: 2, Name: "Three"},
	)

	properties, err := svc.Featured(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}

func TestSimilarExcludesSource(t *testing.T) {
	svc, client := testService(
		pms.Unit{ID: 1, NodeID: 1, Name: "Source", Bedrooms: 4},
		pms.Unit{ID: 2, NodeID: 1, Name: "Match A", Bedrooms: 4},
		pms.Unit{ID: 3, NodeID: 2, Name: "Match B", Bedrooms: 4},
		pms.Unit{ID: 4, NodeID: 2, Name: "Other", Bedrooms: 2},
	)

	similar, err := svc.Similar(context.Background(), "prop-1", 5)
	require.NoError(t, err)

	require.Len(t, similar, 2)
	for _, p := range similar {
		assert.NotEqual(t, "prop-1", p.ID)
		assert.Equal(t, 4, p.Bedrooms)
	}

	// The candidate search must have been scoped to the source's bedrooms.
	last := client.searchCalls[len(client.searchCalls)-1]
	require.NotNil(t, last.Bedrooms)
	assert.Equal(t, 4, *last.Bedrooms)
}

func TestSimilarMissingSource(t *testing.T) {
	svc, _ := testService()

	similar, err := svc.Similar(context.Background(), "prop-99", 5)
	require.NoError(t, err)
	assert.Nil(t, similar)
}

func TestVillages(t *testing.T) {
	svc, _ := testService()

	villages, err := svc.Villages(context.Background())
	require.NoError(t, err)
	require.Len(t, villages, 2)
	// Ordered by name.
	assert.Equal(t, "Avon", villages[0].Name)
	assert.Equal(t, "Salvo", villages[1].Name)
}

func TestVillageBySlug(t *testing.T) {
	svc, _ := testService()

	village, err := svc.Village(context.Background(), "salvo")
	require.NoError(t, err)
	require.NotNil(t, village)
	assert.Equal(t, "Salvo", village.Name)

	missing, err := svc.Village(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
