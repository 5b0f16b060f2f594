package catalog

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"catalog-api-go/internal/pms"
)

// slugScanPageSize bounds slug lookups. Slugs are derived from names, not
// stored upstream, so resolving one means mapping a page of units and
// scanning it: an O(page) operation, not O(catalog).
const slugScanPageSize = 100

// imageFetchLimit caps the gallery fetch for a single property detail.
const imageFetchLimit = 24

// PMSClient is the upstream seam the catalog service reads through.
type PMSClient interface {
	FetchUnit(ctx context.Context, id int) (*pms.Unit, error)
	SearchUnits(ctx context.Context, params pms.SearchParams, page, pageSize int) ([]pms.Unit, int, error)
	FetchUnitImages(ctx context.Context, id, limit int) ([]pms.Image, error)
}

// NodeSource resolves node ids to villages. Satisfied by refdata.Cache.
type NodeSource interface {
	NodesMap(ctx context.Context) (map[int]Village, error)
}

// Service answers catalog lookups: single properties, featured sets,
// villages, similar properties. Search goes through the search engine.
type Service struct {
	pms    PMSClient
	nodes  NodeSource
	logger *zap.Logger
}

// NewService creates a catalog service.
func NewService(client PMSClient, nodes NodeSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pms:    client,
		nodes:  nodes,
		logger: logger,
	}
}

// Property resolves a property reference: a prefixed catalog id, a bare
// upstream unit id, or a derived slug. A miss returns (nil, nil) so
// callers can render an empty state without error handling.
func (s *Service) Property(ctx context.Context, ref string) (*Property, error) {
	if id, ok := UnitID(ref); ok {
		return s.propertyByUnitID(ctx, id)
	}
	return s.propertyBySlug(ctx, ref)
}

func (s *Service) propertyByUnitID(ctx context.Context, id int) (*Property, error) {
	unit, err := s.pms.FetchUnit(ctx, id)
	if err != nil {
		var upstreamErr *pms.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}

	nodes, err := s.nodes.NodesMap(ctx)
	if err != nil {
		return nil, err
	}

	village, resolved := nodes[unit.NodeID]
	property := MapUnit(*unit, village, resolved)

	// Unit listings often carry only a cover image; pull the gallery for
	// a detail lookup.
	if len(property.Images) == 0 {
		images, err := s.pms.FetchUnitImages(ctx, unit.ID, imageFetchLimit)
		if err != nil {
			s.logger.Warn("image fetch failed, returning property without gallery",
				zap.String("property_id", property.ID),
				zap.Error(err),
			)
		} else {
			property.Images = images
		}
	}

	return &property, nil
}

func (s *Service) propertyBySlug(ctx context.Context, slug string) (*Property, error) {
	properties, _, err := s.page(ctx, pms.SearchParams{}, 1, slugScanPageSize)
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		if p.Slug == slug {
			match := p
			return &match, nil
		}
	}
	return nil, nil
}

// Featured returns up to limit properties for grid contexts.
func (s *Service) Featured(ctx context.Context, limit int) ([]Property, error) {
	properties, _, err := s.page(ctx, pms.SearchParams{}, 1, limit)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// Similar returns up to limit properties sharing the source property's
// bedroom count, the source itself excluded.
func (s *Service) Similar(ctx context.Context, ref string, limit int) ([]Property, error) {
	source, err := s.Property(ctx, ref)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, nil
	}

	bedrooms := source.Bedrooms
	candidates, _, err := s.page(ctx, pms.SearchParams{Bedrooms: &bedrooms}, 1, limit+1)
	if err != nil {
		return nil, err
	}

	similar := make([]Property, 0, limit)
	for _, p := range candidates {
		if p.ID == source.ID {
			continue
		}
		similar = append(similar, p)
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}

// Villages returns all villages, ordered by name.
func (s *Service) Villages(ctx context.Context) ([]Village, error) {
	nodes, err := s.nodes.NodesMap(ctx)
	if err != nil {
		return nil, err
	}

	villages := make([]Village, 0, len(nodes))
	for _, village := range nodes {
		villages = append(villages, village)
	}
	sort.Slice(villages, func(i, j int) bool {
		return villages[i].Name < villages[j].Name
	})
	return villages, nil
}

// Village returns the village with the given slug, or (nil, nil).
func (s *Service) Village(ctx context.Context, slug string) (*Village, error) {
	nodes, err := s.nodes.NodesMap(ctx)
	if err != nil {
		return nil, err
	}
	for _, village := range nodes {
		if village.Slug == slug {
			v := village
			return &v, nil
		}
	}
	return nil, nil
}

// page fetches and maps one page of units.
func (s *Service) page(ctx context.Context, params pms.SearchParams, page, pageSize int) ([]Property, int, error) {
	units, total, err := s.pms.SearchUnits(ctx, params, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	nodes, err := s.nodes.NodesMap(ctx)
	if err != nil {
		return nil, 0, err
	}
	return MapUnits(units, nodes), total, nil
}
