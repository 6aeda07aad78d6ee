// Package auth is the identity provider behind the admin view: it checks
// the admin credentials, issues cookie sessions and lets callers observe a
// session until they unsubscribe.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kdimtricp/videogrid/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Session struct {
	Token     string
	User      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Credentials configure the single admin account.
type Credentials struct {
	User         string
	PasswordHash string
	SessionTTL   time.Duration
}

type Provider struct {
	creds  Credentials
	logger logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	sessions  map[string]Session
	observers map[string]map[int]*observer
	nextID    int
	// seq orders every state snapshot handed to observers.
	seq uint64
}

// observer delivers states in snapshot order and drops any that arrive
// after a newer one.
type observer struct {
	mu   sync.Mutex
	seen uint64
	fn   func(active bool)
}

func (o *observer) deliver(seq uint64, active bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq <= o.seen {
		return
	}
	o.seen = seq
	o.fn(active)
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(creds Credentials, log logger.Logger, opts ...Option) *Provider {
	if creds.SessionTTL <= 0 {
		creds.SessionTTL = 12 * time.Hour
	}
	p := &Provider{
		creds:     creds,
		logger:    log.WithComponent("Auth"),
		now:       time.Now,
		sessions:  make(map[string]Session),
		observers: make(map[string]map[int]*observer),
	}
	for _, opt := range opts {
		opt(p)
	}
	if creds.PasswordHash == "" {
		p.logger.Warn("ADMIN_PASSWORD_HASH is empty, admin sign-in is disabled")
	}
	return p
}

// SignIn checks user and password and opens a new session.
func (p *Provider) SignIn(ctx context.Context, user, password string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	if p.creds.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(p.creds.User)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(p.creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		p.logger.Warn("Rejected sign-in", "user", user)
		return Session{}, ErrInvalidCredentials
	}

	now := p.now()
	sess := Session{
		Token:     uuid.New().String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(p.creds.SessionTTL),
	}

	p.mu.Lock()
	p.sessions[sess.Token] = sess
	p.mu.Unlock()

	p.logger.Info("Admin signed in", "user", user)
	return sess, nil
}

// SignOut ends the session. Unknown tokens are not an error.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	_, ok := p.sessions[token]
	delete(p.sessions, token)
	p.seq++
	seq := p.seq
	obs := p.observersLocked(token)
	p.mu.Unlock()

	if ok {
		p.logger.Info("Admin signed out")
		notify(obs, seq, false)
	}
	return nil
}

// Current returns the live session for token. Expired sessions are absent.
func (p *Provider) Current(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentLocked(token)
}

func (p *Provider) currentLocked(token string) (Session, bool) {
	sess, ok := p.sessions[token]
	if !ok || sess.Expired(p.now()) {
		return Session{}, false
	}
	return sess, true
}

// ObserveSession calls fn with the current state of token and again every
// time it changes. The returned func stops the observation.
func (p *Provider) ObserveSession(token string, fn func(active bool)) (unsubscribe func()) {
	o := &observer{fn: fn}

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	if p.observers[token] == nil {
		p.observers[token] = make(map[int]*observer)
	}
	p.observers[token][id] = o
	_, active := p.currentLocked(token)
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	o.deliver(seq, active)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.observers[token], id)
			if len(p.observers[token]) == 0 {
				delete(p.observers, token)
			}
		})
	}
}

// SweepExpired drops expired sessions, tells their observers and returns
// how many were dropped.
func (p *Provider) SweepExpired() int {
	now := p.now()

	p.mu.Lock()
	var ended [][]*observer
	for token, sess := range p.sessions {
		if sess.Expired(now) {
			delete(p.sessions, token)
			ended = append(ended, p.observersLocked(token))
		}
	}
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	for _, obs := range ended {
		notify(obs, seq, false)
	}
	return len(ended)
}

func (p *Provider) observersLocked(token string) []*observer {
	obs := make([]*observer, 0, len(p.observers[token]))
	for _, o := range p.observers[token] {
		obs = append(obs, o)
	}
	return obs
}

func notify(obs []*observer, seq uint64, active bool) {
	for _, o := range obs {
		o.deliver(seq, active)
	}
}
