package sessions

import (
	"context"
	"sync"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/carousel"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CookieName carries the carousel session id
const CookieName = "learnhub_session"

// Session is one visitor's carousel. It lives until it expires or is
// evicted, at which point its auto-advancer is stopped and any fetch it
// started is cancelled.
type Session struct {
	ID         string
	Controller *carousel.Controller
	Viewport   *carousel.Viewport

	ctx      context.Context
	cancel   context.CancelFunc
	advancer *carousel.AutoAdvancer
}

// Context is cancelled when the session ends. Fetches run under it so a
// visitor navigating away does not abort a page load.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) close() {
	s.cancel()
	if s.advancer != nil {
		s.advancer.Stop()
	}
}

// Options configures a Store
type Options struct {
	Capacity int
	TTL      time.Duration
	Autoplay bool
	Interval time.Duration
	Clock    carousel.Clock
}

// Store keeps carousel sessions in an expiring LRU cache
type Store struct {
	mu      sync.Mutex
	cache   *expirable.LRU[string, *Session]
	fetcher carousel.PageFetcher
	opts    Options
	logger  *core.Logger
}

// NewStore creates a session store backed by fetcher
func NewStore(fetcher carousel.PageFetcher, opts Options, logger *core.Logger) *Store {
	if opts.Capacity <= 0 {
		opts.Capacity = 1024
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if logger == nil {
		logger = core.NewNopLogger()
	}

	s := &Store{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
	s.cache = expirable.NewLRU[string, *Session](opts.Capacity, s.onEvict, opts.TTL)
	return s
}

func (s *Store) onEvict(id string, sess *Session) {
	s.logger.Debug("Carousel session ended", "session_id", id)
	sess.close()
}

// Get returns a live session and extends its lifetime
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *Store) getLocked(id string) (*Session, bool) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	// Re-adding an existing key refreshes its expiry
	s.cache.Add(id, sess)
	return sess, true
}

// GetOrCreate returns the session for id, creating a new one with a fresh
// id when id is unknown or malformed. width seeds the viewport of new
// sessions; zero means the default width.
func (s *Store) GetOrCreate(id string, width int) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if sess, ok := s.getLocked(id); ok {
			return sess, false
		}
	}

	sess := s.newSession(width)
	s.cache.Add(sess.ID, sess)
	s.logger.Debug("Carousel session created", "session_id", sess.ID, "sessions", s.cache.Len())
	return sess, true
}

func (s *Store) newSession(width int) *Session {
	if width <= 0 {
		width = carousel.DefaultViewportWidth
	}

	ctx, cancel := context.WithCancel(context.Background())
	viewport := carousel.NewViewport(width)
	ctrl := carousel.NewController(s.fetcher, viewport, s.logger)

	sess := &Session{
		ID:         uuid.NewString(),
		Controller: ctrl,
		Viewport:   viewport,
		ctx:        ctx,
		cancel:     cancel,
	}

	if s.opts.Autoplay {
		sess.advancer = carousel.NewAutoAdvancer(ctrl, s.opts.Clock, s.opts.Interval, s.logger)
		ctrl.OnScheduleChange(sess.advancer.Reset)
		sess.advancer.Start(ctx)
	}

	return sess
}

// Remove ends the session for id
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.cache.Len()
}

// Close ends every session
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
