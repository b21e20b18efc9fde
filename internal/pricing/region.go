package pricing

import (
	"fmt"
	"sort"
)

// Region is a market context an item can be priced and sold in.
type Region struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// RegionCatalog is an immutable set of regions indexed by id.
type RegionCatalog struct {
	byID    map[int64]Region
	ordered []Region
}

// NewRegionCatalog indexes the provided regions. Duplicate ids are rejected.
func NewRegionCatalog(regions []Region) (*RegionCatalog, error) {
	byID := make(map[int64]Region, len(regions))
	ordered := make([]Region, 0, len(regions))
	for _, region := range regions {
		if _, exists := byID[region.ID]; exists {
			return nil, fmt.Errorf("pricing: duplicate region id %d", region.ID)
		}
		byID[region.ID] = region
		ordered = append(ordered, region)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &RegionCatalog{byID: byID, ordered: ordered}, nil
}

// Get returns the region with the given id.
func (c *RegionCatalog) Get(id int64) (Region, bool) {
	if c == nil {
		return Region{}, false
	}
	region, ok := c.byID[id]
	return region, ok
}

// Contains reports whether the id is a known region.
func (c *RegionCatalog) Contains(id int64) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns a copy of the regions ordered by id.
func (c *RegionCatalog) All() []Region {
	if c == nil {
		return nil
	}
	out := make([]Region, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of regions.
func (c *RegionCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ordered)
}
