// Package catalog provides the read-only tourism catalog: regions,
// districts and places with localized names. The catalog is loaded once at
// startup and never mutated, so menu generators can read it without
// touching the database mid-turn.
package catalog

import (
	"github.com/temberanawe/ussd/internal/domain"
)

// Place is an immutable catalog entry a caller can visit, favorite or book.
type Place struct {
	ID       string
	NameEN   string
	NameRW   string
	Price    int // RWF, zero means free
	Rating   float64
	Category string
}

// Name returns the place name in the given language.
func (p Place) Name(lang domain.Language) string {
	if lang == domain.LangKinyarwanda {
		return p.NameRW
	}
	return p.NameEN
}

// District groups the places of one administrative district.
type District struct {
	Slug   string
	Name   string
	Places []Place
}

// Region is a province-level administrative region.
type Region struct {
	ID        int
	NameEN    string
	NameRW    string
	Districts []District
}

// Name returns the region name in the given language.
func (r Region) Name(lang domain.Language) string {
	if lang == domain.LangKinyarwanda {
		return r.NameRW
	}
	return r.NameEN
}

// Catalog is an in-memory snapshot of the reference data.
type Catalog struct {
	regions []Region
}

// New builds a catalog from already-ordered regions. Used by the sqlite
// loader and by tests that need a fixture catalog.
func New(regions []Region) *Catalog {
	return &Catalog{regions: regions}
}

// Regions returns the ordered region list.
func (c *Catalog) Regions() []Region {
	return c.regions
}

// PlaceCount returns the total number of places across all districts.
func (c *Catalog) PlaceCount() int {
	n := 0
	for _, r := range c.regions {
		for _, d := range r.Districts {
			n += len(d.Places)
		}
	}
	return n
}
