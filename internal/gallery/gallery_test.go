package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailAndExternalSelect(t *testing.T) {
	carousel := NewSnapCarousel(2)
	c := NewController(2)
	release := c.Mount(carousel)
	defer release()

	assert.Equal(t, 0, c.SelectedIndex())

	require.NoError(t, c.ActivateThumbnail(1))
	assert.Equal(t, 1, c.SelectedIndex())
	assert.Equal(t, 1, carousel.SelectedSnap())

	carousel.Select(0)
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestMountSyncsFromCarousel(t *testing.T) {
	carousel := NewSnapCarousel(3)
	carousel.ScrollTo(2)

	c := NewController(3)
	release := c.Mount(carousel)
	defer release()

	assert.Equal(t, 2, c.SelectedIndex())
}

func TestReleaseUnsubscribes(t *testing.T) {
	carousel := NewSnapCarousel(3)
	c := NewController(3)

	release := c.Mount(carousel)
	assert.Equal(t, 1, carousel.Subscribers())

	release()
	release()
	assert.Equal(t, 0, carousel.Subscribers())

	carousel.Select(2)
	assert.Equal(t, 0, c.SelectedIndex(), "released controller must not observe the carousel")
}

func TestActivateThumbnailOutOfRange(t *testing.T) {
	c := NewController(2)
	release := c.Mount(NewSnapCarousel(2))
	defer release()

	assert.ErrorIs(t, c.ActivateThumbnail(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.ActivateThumbnail(-1), ErrIndexOutOfRange)
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestHandleSelectClamps(t *testing.T) {
	c := NewController(3)
	c.HandleSelect(7)
	assert.Equal(t, 2, c.SelectedIndex())
	c.HandleSelect(-4)
	assert.Equal(t, 0, c.SelectedIndex())

	empty := NewController(0)
	empty.HandleSelect(1)
	assert.Equal(t, 0, empty.SelectedIndex())
	assert.ErrorIs(t, empty.ActivateThumbnail(0), ErrIndexOutOfRange)
}

func TestActivateWithoutCarousel(t *testing.T) {
	c := NewController(2)
	require.NoError(t, c.ActivateThumbnail(1))
	assert.Equal(t, 1, c.SelectedIndex())
}

// deferredCarousel reports positions only when flush is called, like a widget
// animating the scroll.
type deferredCarousel struct {
	*SnapCarousel
	pending []int
}

func (d *deferredCarousel) ScrollTo(i int) { d.pending = append(d.pending, i) }

func (d *deferredCarousel) flush() {
	for _, i := range d.pending {
		d.SnapCarousel.ScrollTo(i)
	}
	d.pending = nil
}

func TestSelectionFollowsAsyncNotification(t *testing.T) {
	carousel := &deferredCarousel{SnapCarousel: NewSnapCarousel(3)}
	c := NewController(3)
	release := c.Mount(carousel)
	defer release()

	require.NoError(t, c.ActivateThumbnail(2))
	assert.Equal(t, 0, c.SelectedIndex())

	carousel.flush()
	assert.Equal(t, 2, c.SelectedIndex())
}
