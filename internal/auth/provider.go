package auth

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/store"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/jwt"
)

// Phase is the provider's session state.
type Phase int

const (
	Unauthenticated Phase = iota
	Authenticating
	Authenticated
)

// LoginResponse is returned to the HTTP surface on a successful login.
type LoginResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
	Role  model.Role       `json:"role"`
}

// Provider authenticates users and owns the current session. Login is
// two-phase: the session is established from the credential check, then the
// role is resolved with a sequential directory call. No other component
// mutates the session.
type Provider struct {
	directory Directory
	snapshots store.Store
	notifier  ws.Notifier

	mu      sync.RWMutex
	phase   Phase
	session *model.Session
}

func NewProvider(directory Directory, snapshots store.Store, notifier ws.Notifier) *Provider {
	return &Provider{
		directory: directory,
		snapshots: snapshots,
		notifier:  notifier,
		phase:     Authenticating,
	}
}

// Restore rehydrates the prior session from the currentUser snapshot. Always
// resolves to a terminal phase; a malformed or missing snapshot means
// unauthenticated, never a stuck loading state.
func (p *Provider) Restore(ctx context.Context) {
	var session model.Session
	found, err := p.snapshots.Load(ctx, store.KeyCurrentUser, &session)
	if err != nil {
		log.Printf("auth: session restore failed: %v", err)
		found = false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if found && session.User.ID != "" {
		p.session = &session
		p.phase = Authenticated
		return
	}
	p.session = nil
	p.phase = Unauthenticated
}

// Login validates credentials and establishes the session. It reports
// success via the boolean; failures surface only as a notification and leave
// any prior session untouched.
func (p *Provider) Login(ctx context.Context, email, password string) (*LoginResponse, bool) {
	p.mu.Lock()
	prevPhase, prevSession := p.phase, p.session
	p.phase = Authenticating
	p.mu.Unlock()

	// A failed attempt restores whatever was active before, keeping memory
	// consistent with the persisted snapshot (which was never touched).
	restore := func() {
		p.mu.Lock()
		p.phase, p.session = prevPhase, prevSession
		p.mu.Unlock()
	}

	user, err := p.directory.Authenticate(ctx, email, password)
	if err != nil {
		restore()
		p.notify(ws.Notification{
			Title:       "Error de autenticación",
			Description: "Correo electrónico o contraseña incorrectos",
			Variant:     "destructive",
		})
		return nil, false
	}

	// Phase 1: session established.
	session := &model.Session{User: *user}
	session.User.Password = ""

	// Phase 2: role resolved with a sequential awaited lookup.
	role, err := p.directory.LookupRole(ctx, user.ID)
	if err != nil {
		log.Printf("auth: role resolution for %s: %v", user.Email, err)
	} else {
		session.Role = role
		session.User.Role = role
	}

	// Single active session per user.
	tokenVersion := uuid.New().String()
	if err := p.directory.UpdateTokenVersion(ctx, user.ID, tokenVersion); err != nil {
		log.Printf("auth: update token version: %v", err)
	}

	token, err := jwt.GenerateToken(session.User.Public(), tokenVersion)
	if err != nil {
		restore()
		p.notify(ws.Notification{
			Title:       "Error de autenticación",
			Description: "No se pudo iniciar la sesión",
			Variant:     "destructive",
		})
		return nil, false
	}

	p.mu.Lock()
	p.session = session
	p.phase = Authenticated
	p.mu.Unlock()

	if err := p.snapshots.Save(ctx, store.KeyCurrentUser, session); err != nil {
		log.Printf("auth: persist session: %v", err)
	}

	p.notify(ws.Notification{
		Title:       "Inicio de sesión exitoso",
		Description: fmt.Sprintf("Bienvenido, %s!", session.User.Username),
	})

	return &LoginResponse{
		Token: token,
		User:  session.User.Public(),
		Role:  session.Role,
	}, true
}

// Logout clears the session in memory and in the snapshot store.
func (p *Provider) Logout(ctx context.Context) {
	p.clearSession(ctx)
	p.notify(ws.Notification{
		Title:       "Sesión cerrada",
		Description: "Has cerrado sesión correctamente",
	})
}

// IsAuthorized is true iff a session with a resolved user exists.
func (p *Provider) IsAuthorized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.phase == Authenticated && p.session != nil && p.session.User.ID != ""
}

// Loading reports whether the provider is still resolving a session.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.phase == Authenticating
}

// Current returns a copy of the active session, or nil.
func (p *Provider) Current() *model.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return nil
	}
	copied := *p.session
	return &copied
}

// Directory exposes the backing directory for the middleware's strict
// session check.
func (p *Provider) Directory() Directory {
	return p.directory
}

func (p *Provider) clearSession(ctx context.Context) {
	p.mu.Lock()
	p.session = nil
	p.phase = Unauthenticated
	p.mu.Unlock()

	if err := p.snapshots.Delete(ctx, store.KeyCurrentUser); err != nil {
		log.Printf("auth: clear persisted session: %v", err)
	}
}

func (p *Provider) notify(n ws.Notification) {
	if p.notifier == nil {
		return
	}
	p.notifier.Notify(n)
}
