package model

import "time"

type GalleryImage struct {
	ID          int64     `json:"id"`
	Src         string    `json:"src"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ObjectKey   string    `json:"objectKey,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}
