package menulayout

import (
	"sync"

	"github.com/goliatone/go-navigation/pkg/domain"
)

// HandlerSource publishes the current set of main-menu contributions.
// Subscribe returns a channel that receives the current snapshot first and
// any later updates, plus a cancel func releasing the subscription. The
// layout service only ever takes the first emission.
type HandlerSource interface {
	Subscribe() (<-chan []domain.MenuHandlerData, func())
}

// StaticSource holds the handler set in memory and replays it to new
// subscribers. Hosts update it with Set as feature handlers come and go.
type StaticSource struct {
	mu       sync.Mutex
	current  []domain.MenuHandlerData
	nextID   int
	watchers map[int]chan []domain.MenuHandlerData
}

var _ HandlerSource = (*StaticSource)(nil)

// NewStaticSource seeds a source with the given handler set.
func NewStaticSource(handlers ...domain.MenuHandlerData) *StaticSource {
	return &StaticSource{
		current:  handlers,
		watchers: make(map[int]chan []domain.MenuHandlerData),
	}
}

// Set replaces the handler set and notifies active subscribers. Slow
// subscribers miss intermediate snapshots instead of blocking the caller.
func (s *StaticSource) Set(handlers []domain.MenuHandlerData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = handlers
	for _, ch := range s.watchers {
		select {
		case ch <- handlers:
		default:
		}
	}
}

// Subscribe registers a watcher primed with the current snapshot.
func (s *StaticSource) Subscribe() (<-chan []domain.MenuHandlerData, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan []domain.MenuHandlerData, 1)
	ch <- s.current
	s.watchers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
	}
	return ch, cancel
}
