package services

import (
	"context"
	"sync"
	"time"

	"ledquote/models"

	"github.com/rs/zerolog/log"
)

// SearchFunc performs one contact lookup.
type SearchFunc func(ctx context.Context, query string) ([]models.Contact, error)

// SearchResult is the outcome of the search issued for Token.
type SearchResult struct {
	Token    uint64
	Query    string
	Contacts []models.Contact
	Err      error
}

// SearchSession debounces type-ahead queries and keeps only the latest
// one alive: each Submit stops the pending timer and cancels the request
// in flight, so results always belong to the last issued query.
type SearchSession struct {
	search   SearchFunc
	debounce time.Duration
	results  chan SearchResult

	mu     sync.Mutex
	token  uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func NewSearchSession(search SearchFunc, debounce time.Duration) *SearchSession {
	return &SearchSession{
		search:   search,
		debounce: debounce,
		results:  make(chan SearchResult, 1),
	}
}

// Results yields the result of the latest query. A result still
// buffered when a newer query is submitted is dropped. Callers reading
// concurrently with Submit should still compare Token with the value
// Submit returned.
func (s *SearchSession) Results() <-chan SearchResult {
	return s.results
}

// Submit schedules query after the debounce delay and returns its token.
func (s *SearchSession) Submit(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.token
	}
	s.supersede()
	token := s.token
	s.timer = time.AfterFunc(s.debounce, func() { s.run(token, query) })
	return token
}

// Close stops the pending query and cancels the one in flight.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersede()
	s.closed = true
}

// supersede must be called with mu held. It also discards an
// undelivered result, which now belongs to an older query.
func (s *SearchSession) supersede() {
	s.token++
	select {
	case <-s.results:
	default:
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SearchSession) run(token uint64, query string) {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	contacts, err := s.search(ctx, query)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		log.Debug().Str("query", query).Msg("dropping superseded contact search")
		return
	}
	s.cancel = nil
	select {
	case <-s.results:
	default:
	}
	s.results <- SearchResult{Token: token, Query: query, Contacts: contacts, Err: err}
}
