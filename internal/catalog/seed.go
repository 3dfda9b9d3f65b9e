package catalog

import (
	"fmt"
	"strings"
)

// seedRegions is the reference dataset loaded into an empty catalog
// database. Names come in English and Kinyarwanda; district names are the
// same in both.
var seedRegions = []Region{
	{
		ID: 1, NameEN: "Southern Province", NameRW: "Amajyepfo",
		Districts: []District{
			{Slug: "huye", Name: "Huye", Places: []Place{
				{ID: "huye-1", NameEN: "National Ethnographic Museum", NameRW: "Ingoro y'Amazina y'Abanyarwanda", Price: 10000, Rating: 4.5, Category: "museum"},
				{ID: "huye-2", NameEN: "King's Palace Museum", NameRW: "Ingoro ya Cyami", Price: 8000, Rating: 4.2, Category: "historical"},
			}},
			{Slug: "kamonyi", Name: "Kamonyi"},
			{Slug: "nyamagabe", Name: "Nyamagabe"},
			{Slug: "gisagara", Name: "Gisagara"},
			{Slug: "nyanza", Name: "Nyanza"},
		},
	},
	{
		ID: 2, NameEN: "Northern Province", NameRW: "Amajyaruguru",
		Districts: []District{
			{Slug: "musanze", Name: "Musanze", Places: []Place{
				{ID: "musanze-1", NameEN: "Volcanoes National Park", NameRW: "Pariki y'Ibirunga", Price: 15000, Rating: 4.8, Category: "nature"},
				{ID: "musanze-2", NameEN: "Musanze Caves", NameRW: "Ubuvumo bwa Musanze", Price: 5000, Rating: 4.0, Category: "adventure"},
			}},
			{Slug: "gicumbi", Name: "Gicumbi"},
			{Slug: "rulindo", Name: "Rulindo"},
			{Slug: "gakenke", Name: "Gakenke"},
			{Slug: "burera", Name: "Burera"},
		},
	},
	{
		ID: 3, NameEN: "Western Province", NameRW: "Iburengerazuba",
		Districts: []District{
			{Slug: "karongi", Name: "Karongi"},
			{Slug: "nyamasheke", Name: "Nyamasheke"},
			{Slug: "rubavu", Name: "Rubavu"},
			{Slug: "ngororero", Name: "Ngororero"},
			{Slug: "rutsiro", Name: "Rutsiro"},
		},
	},
	{
		ID: 4, NameEN: "Eastern Province", NameRW: "Iburasirazuba",
		Districts: []District{
			{Slug: "kayonza", Name: "Kayonza"},
			{Slug: "kirehe", Name: "Kirehe"},
			{Slug: "ngoma", Name: "Ngoma"},
			{Slug: "gatsibo", Name: "Gatsibo"},
			{Slug: "nyagatare", Name: "Nyagatare"},
		},
	},
	{
		ID: 5, NameEN: "Kigali City", NameRW: "Umujyi wa Kigali",
		Districts: []District{
			{Slug: "nyarugenge", Name: "Nyarugenge"},
			{Slug: "kicukiro", Name: "Kicukiro"},
			{Slug: "gasabo", Name: "Gasabo"},
		},
	},
}

// SeedData returns a catalog built directly from the reference dataset,
// bypassing sqlite. Tests use it as a fixture.
func SeedData() *Catalog {
	return New(seedRegions)
}

func (c *DB) seedIfEmpty() error {
	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return fmt.Errorf("count regions: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range seedRegions {
		if _, err := tx.Exec(
			`INSERT INTO regions (id, name_en, name_rw) VALUES (?, ?, ?)`,
			r.ID, r.NameEN, r.NameRW); err != nil {
			return fmt.Errorf("insert region %d: %w", r.ID, err)
		}
		for pos, d := range r.Districts {
			slug := d.Slug
			if slug == "" {
				slug = strings.ToLower(d.Name)
			}
			if _, err := tx.Exec(
				`INSERT INTO districts (slug, region_id, position, name) VALUES (?, ?, ?, ?)`,
				slug, r.ID, pos+1, d.Name); err != nil {
				return fmt.Errorf("insert district %s: %w", slug, err)
			}
			for ppos, p := range d.Places {
				if _, err := tx.Exec(
					`INSERT INTO places (id, district_slug, position, name_en, name_rw, price, rating, category)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					p.ID, slug, ppos+1, p.NameEN, p.NameRW, p.Price, p.Rating, p.Category); err != nil {
					return fmt.Errorf("insert place %s: %w", p.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
