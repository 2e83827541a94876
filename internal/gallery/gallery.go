// Package gallery keeps a vehicle image gallery in step with its carousel widget.
package gallery

import (
	"errors"
	"sync"
)

var ErrIndexOutOfRange = errors.New("gallery: image index out of range")

// Carousel is the scrolling widget that owns the slides. ScrollTo may report
// the new position through OnSelect either synchronously or later.
type Carousel interface {
	ScrollTo(index int)
	SelectedSnap() int
	OnSelect(fn func(index int)) (unsubscribe func())
}

// Controller tracks the selected image of one gallery view.
type Controller struct {
	mu         sync.Mutex
	imageCount int
	selected   int
	carousel   Carousel
}

func NewController(imageCount int) *Controller {
	if imageCount < 0 {
		imageCount = 0
	}
	return &Controller{imageCount: imageCount}
}

// Mount attaches the controller to a carousel and syncs the selected index
// from it. The returned release detaches the subscription; calling it more
// than once is harmless.
func (c *Controller) Mount(carousel Carousel) (release func()) {
	unsubscribe := carousel.OnSelect(c.HandleSelect)

	c.mu.Lock()
	c.carousel = carousel
	c.mu.Unlock()
	c.HandleSelect(carousel.SelectedSnap())

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			c.mu.Lock()
			if c.carousel == carousel {
				c.carousel = nil
			}
			c.mu.Unlock()
		})
	}
}

func (c *Controller) SelectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// HandleSelect applies a position reported by the carousel.
func (c *Controller) HandleSelect(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = c.clamp(index)
}

// ActivateThumbnail asks the mounted carousel to scroll to index. The selected
// index changes only once the carousel reports the new position.
func (c *Controller) ActivateThumbnail(index int) error {
	c.mu.Lock()
	if index < 0 || index >= c.imageCount {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	carousel := c.carousel
	c.mu.Unlock()

	if carousel == nil {
		// no widget mounted, nothing will report back
		c.HandleSelect(index)
		return nil
	}
	carousel.ScrollTo(index)
	return nil
}

func (c *Controller) clamp(index int) int {
	switch {
	case c.imageCount == 0 || index < 0:
		return 0
	case index >= c.imageCount:
		return c.imageCount - 1
	}
	return index
}
