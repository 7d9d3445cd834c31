// Package store catalogs the images of the currently loaded folder for paged listing.
// The catalog lives in an in-memory sqlite database and is rebuilt on every folder load;
// nothing is written to disk.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var ErrPhotoNotFound = errors.New("photo not found")

type Catalog struct {
	db *sql.DB
}

func NewCatalog() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	catalog := &Catalog{db: db}

	if err := catalog.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return catalog, nil
}

func (d *Catalog) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS photos (
		"order" INTEGER NOT NULL PRIMARY KEY,
		photo_name TEXT NOT NULL,
		path TEXT NOT NULL
	);
	`
	_, err := d.db.Exec(query)
	return err
}

// Replace swaps the catalog contents for paths, keeping their order.
func (d *Catalog) Replace(paths []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM photos`); err != nil {
		return fmt.Errorf("failed to clear photos: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO photos ("order", photo_name, path) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, path := range paths {
		if _, err := stmt.Exec(i, filepath.Base(path), path); err != nil {
			return fmt.Errorf("failed to insert photo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (d *Catalog) GetPhotos(limit int, offset int) ([]Photo, error) {
	query := `
		SELECT photo_name, path, "order"
		FROM photos
		ORDER BY "order" ASC
		LIMIT ? OFFSET ?
	`
	rows, err := d.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.PhotoName, &p.Path, &p.Order); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return photos, nil
}

func (d *Catalog) GetPhotoCount() (int, error) {
	query := `SELECT COUNT(*) FROM photos`
	var count int
	err := d.db.QueryRow(query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get photo count: %w", err)
	}
	return count, nil
}

func (d *Catalog) GetPhoto(order int) (*Photo, error) {
	query := `SELECT photo_name, path, "order" FROM photos WHERE "order" = ?`
	var p Photo
	err := d.db.QueryRow(query, order).Scan(&p.PhotoName, &p.Path, &p.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", ErrPhotoNotFound, order)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &p, nil
}

func (d *Catalog) Close() error {
	return d.db.Close()
}
