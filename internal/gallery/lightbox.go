// Package gallery provides the photo catalogue view and photo storage.
package gallery

import (
	"errors"
	"fmt"

	"github.com/dukerupert/familytree/internal/model"
)

var ErrOutOfRange = errors.New("image index out of range")

// Lightbox navigates a fixed list of images one at a time. Navigation wraps
// at both ends.
type Lightbox struct {
	images []model.GalleryImage
	index  int
}

func NewLightbox(images []model.GalleryImage) *Lightbox {
	return &Lightbox{images: images}
}

// Open moves to image i.
func (l *Lightbox) Open(i int) error {
	if i < 0 || i >= len(l.images) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(l.images))
	}
	l.index = i
	return nil
}

func (l *Lightbox) Next() {
	if len(l.images) == 0 {
		return
	}
	l.index = (l.index + 1) % len(l.images)
}

func (l *Lightbox) Previous() {
	if len(l.images) == 0 {
		return
	}
	l.index = (l.index - 1 + len(l.images)) % len(l.images)
}

func (l *Lightbox) Index() int {
	return l.index
}

// Current returns the open image, or false when the lightbox is empty.
func (l *Lightbox) Current() (model.GalleryImage, bool) {
	if len(l.images) == 0 {
		return model.GalleryImage{}, false
	}
	return l.images[l.index], true
}

// Position renders the 1-based position, e.g. "3 of 9".
func (l *Lightbox) Position() string {
	if len(l.images) == 0 {
		return "0 of 0"
	}
	return fmt.Sprintf("%d of %d", l.index+1, len(l.images))
}

// View is a JSON snapshot of the lightbox at one position.
type View struct {
	Image    model.GalleryImage `json:"image"`
	Index    int                `json:"index"`
	Position string             `json:"position"`
	Previous int                `json:"previous"`
	Next     int                `json:"next"`
}

// ViewAt returns the view for image i along with its wrapped neighbours.
func ViewAt(images []model.GalleryImage, i int) (View, error) {
	l := NewLightbox(images)
	if err := l.Open(i); err != nil {
		return View{}, err
	}
	img, _ := l.Current()
	v := View{Image: img, Index: i, Position: l.Position()}
	l.Previous()
	v.Previous = l.Index()
	l.Next()
	l.Next()
	v.Next = l.Index()
	return v, nil
}
