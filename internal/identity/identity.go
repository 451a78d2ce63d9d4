// Package identity wraps the managed identity service: credential sign-in,
// sign-out, session-change notification, and the role lookup on top of the
// users collection.
package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
)

// The provider's error taxonomy; each maps to a distinct user-facing message.
var (
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUnknownAccount    = errors.New("no account found with this email")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrSessionExpired    = errors.New("session expired")
)

type Provider struct {
	store docstore.Store

	mu        sync.Mutex
	sessions  map[string]string // token -> user document id
	listeners []func(*domain.User)
}

func New(store docstore.Store) *Provider {
	return &Provider{store: store, sessions: make(map[string]string)}
}

// OnChange registers a listener fired with the current user on sign-in and
// with nil on sign-out.
func (p *Provider) OnChange(fn func(*domain.User)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *Provider) notify(u *domain.User) {
	for _, fn := range p.listeners {
		fn(u)
	}
}

// SignIn verifies credentials against the users collection and issues an
// opaque session token.
func (p *Provider) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredential
	}
	docs, err := p.store.List(ctx, docstore.ColUsers)
	if err != nil {
		return "", nil, err
	}
	var u *domain.User
	for _, d := range docs {
		var cand domain.User
		if err := d.Decode(&cand); err != nil {
			continue
		}
		if strings.ToLower(cand.Email) == email {
			cand.ID = d.ID
			u = &cand
			break
		}
	}
	if u == nil {
		return "", nil, ErrUnknownAccount
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrWrongPassword
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	token := uuid.NewString()
	p.mu.Lock()
	p.sessions[token] = u.ID
	p.mu.Unlock()
	p.notify(u)
	return token, u, nil
}

func (p *Provider) SignOut(token string) {
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	p.notify(nil)
}

// CurrentUser resolves a session token to its user, with the role defaulted
// when the document carries none.
func (p *Provider) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	p.mu.Lock()
	uid, ok := p.sessions[token]
	p.mu.Unlock()
	if !ok {
		return nil, ErrSessionExpired
	}
	doc, err := p.store.Get(ctx, docstore.ColUsers, uid)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := doc.Decode(&u); err != nil {
		return nil, err
	}
	u.ID = doc.ID
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	return &u, nil
}

// Role looks the role up by key. Absence of the document, of the field, or
// any lookup failure yields the default role.
func (p *Provider) Role(ctx context.Context, uid string) string {
	doc, err := p.store.Get(ctx, docstore.ColUsers, uid)
	if err != nil {
		return domain.RoleUser
	}
	role, _ := doc.Fields["role"].(string)
	if role != domain.RoleAdmin {
		return domain.RoleUser
	}
	return role
}
