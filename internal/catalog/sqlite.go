package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the sqlite-backed catalog source. It is only used at startup to
// seed and snapshot the reference data.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database, initializes the
// schema and seeds the reference dataset on first run.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	c := &DB{db: db}
	if err := c.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := c.seedIfEmpty(); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	return c, nil
}

func (c *DB) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS regions (
		id INTEGER PRIMARY KEY,
		name_en TEXT NOT NULL,
		name_rw TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS districts (
		slug TEXT PRIMARY KEY,
		region_id INTEGER NOT NULL REFERENCES regions(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_districts_region ON districts(region_id, position);
	CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		district_slug TEXT NOT NULL REFERENCES districts(slug),
		position INTEGER NOT NULL,
		name_en TEXT NOT NULL,
		name_rw TEXT NOT NULL,
		price INTEGER NOT NULL CHECK (price >= 0),
		rating REAL NOT NULL CHECK (rating >= 0 AND rating <= 5),
		category TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_places_district ON places(district_slug, position);
	`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Snapshot reads the full catalog into memory.
func (c *DB) Snapshot(ctx context.Context) (*Catalog, error) {
	regions, err := c.loadRegions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regions {
		districts, err := c.loadDistricts(ctx, regions[i].ID)
		if err != nil {
			return nil, err
		}
		regions[i].Districts = districts
	}
	return New(regions), nil
}

func (c *DB) loadRegions(ctx context.Context) ([]Region, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name_en, name_rw FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.ID, &r.NameEN, &r.NameRW); err != nil {
			return nil, fmt.Errorf("scan region row: %w", err)
		}
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return regions, nil
}

func (c *DB) loadDistricts(ctx context.Context, regionID int) ([]District, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT slug, name FROM districts WHERE region_id = ? ORDER BY position`,
		regionID)
	if err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	defer rows.Close()

	var districts []District
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.Slug, &d.Name); err != nil {
			return nil, fmt.Errorf("scan district row: %w", err)
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate districts: %w", err)
	}

	for i := range districts {
		places, err := c.loadPlaces(ctx, districts[i].Slug)
		if err != nil {
			return nil, err
		}
		districts[i].Places = places
	}
	return districts, nil
}

func (c *DB) loadPlaces(ctx context.Context, districtSlug string) ([]Place, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name_en, name_rw, price, rating, category
		 FROM places WHERE district_slug = ? ORDER BY position`,
		districtSlug)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.NameEN, &p.NameRW, &p.Price, &p.Rating, &p.Category); err != nil {
			return nil, fmt.Errorf("scan place row: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate places: %w", err)
	}
	return places, nil
}

// Close closes the database connection.
func (c *DB) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
