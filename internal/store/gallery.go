package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/familytree/internal/model"
)

type GalleryStore struct {
	db *sql.DB
}

func NewGalleryStore(db *sql.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

func scanGalleryImage(scanner interface{ Scan(...any) error }) (*model.GalleryImage, error) {
	var g model.GalleryImage
	err := scanner.Scan(&g.ID, &g.Src, &g.Title, &g.Description, &g.ObjectKey, &g.SortOrder, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

const galleryCols = `id, src, title, description, object_key, sort_order, created_at`

// List returns all images in display order.
func (s *GalleryStore) List() ([]model.GalleryImage, error) {
	rows, err := s.db.Query(`SELECT ` + galleryCols + ` FROM gallery_images ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var images []model.GalleryImage
	for rows.Next() {
		g, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, *g)
	}
	return images, rows.Err()
}

func (s *GalleryStore) GetByID(id int64) (*model.GalleryImage, error) {
	row := s.db.QueryRow(`SELECT `+galleryCols+` FROM gallery_images WHERE id = ?`, id)
	g, err := scanGalleryImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return g, nil
}

// GetByObjectKey returns the uploaded image stored under key, or nil.
// Seeded images have no object key and never match.
func (s *GalleryStore) GetByObjectKey(key string) (*model.GalleryImage, error) {
	if key == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT `+galleryCols+` FROM gallery_images WHERE object_key = ?`, key)
	g, err := scanGalleryImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery image by key: %w", err)
	}
	return g, nil
}

// Create appends an image after the current last one.
func (s *GalleryStore) Create(src, title, description, objectKey string) (*model.GalleryImage, error) {
	result, err := s.db.Exec(
		`INSERT INTO gallery_images (src, title, description, object_key, sort_order)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM gallery_images))`,
		src, title, description, objectKey,
	)
	if err != nil {
		return nil, fmt.Errorf("insert gallery image: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}
