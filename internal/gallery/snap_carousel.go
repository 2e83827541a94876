package gallery

import "sync"

// SnapCarousel is an in-process Carousel with one snap point per slide.
// Select notifications are delivered synchronously on the calling goroutine.
type SnapCarousel struct {
	mu          sync.Mutex
	slides      int
	current     int
	nextID      int
	subscribers map[int]func(int)
}

func NewSnapCarousel(slides int) *SnapCarousel {
	return &SnapCarousel{slides: slides, subscribers: map[int]func(int){}}
}

func (s *SnapCarousel) ScrollTo(index int) {
	s.mu.Lock()
	if index < 0 || index >= s.slides {
		s.mu.Unlock()
		return
	}
	s.current = index
	s.mu.Unlock()
	s.emit(index)
}

// Select simulates the user swiping to index.
func (s *SnapCarousel) Select(index int) { s.ScrollTo(index) }

func (s *SnapCarousel) SelectedSnap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *SnapCarousel) OnSelect(fn func(int)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Subscribers returns the number of live OnSelect registrations.
func (s *SnapCarousel) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func (s *SnapCarousel) emit(index int) {
	s.mu.Lock()
	fns := make([]func(int), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(index)
	}
}
