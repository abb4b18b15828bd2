// Package session gates the dashboard on an authenticated admin operator.
package session

import (
	"context"
	"errors"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/prometheus"
	"go.uber.org/zap"
)

// ErrNotAdmin rejects a sign-in by an account without the admin role
var ErrNotAdmin = errors.New("Only admin can access the dashboard")

// LoginPath is where denied visitors are sent
const LoginPath = "/"

// Decision is the outcome of entering the dashboard
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect"
}

// Authenticator is the session surface of the API. apiclient.Users
// satisfies it.
type Authenticator interface {
	Profile(ctx context.Context) (model.User, error)
	SignIn(ctx context.Context, creds model.Credentials) (model.User, error)
	SignUp(ctx context.Context, in model.SignUp) (model.User, error)
	SignOut(ctx context.Context) (string, error)
}

// Guard decides entry to the dashboard and owns the sign-in state
type Guard struct {
	auth  Authenticator
	users UserContext
	flags FlagStore
	log   *zap.Logger
}

// NewGuard wires a guard
func NewGuard(auth Authenticator, users UserContext, flags FlagStore, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{auth: auth, users: users, flags: flags, log: log}
}

// Users exposes the injected user context
func (g *Guard) Users() UserContext {
	return g.users
}

// Enter decides whether the dashboard may be shown. A loaded user is
// allowed at once. Without the persisted login flag the visitor is
// redirected without a network call. Otherwise the profile is fetched; any
// failure clears the flag and redirects.
func (g *Guard) Enter(ctx context.Context) Decision {
	d := g.enter(ctx)
	prometheus.RecordSessionDecision(d.String())
	return d
}

func (g *Guard) enter(ctx context.Context) Decision {
	if _, ok := g.users.User(); ok {
		return Allow
	}

	loggedIn, err := g.flags.LoggedIn(ctx)
	if err != nil {
		g.log.Warn("Failed to read login flag", zap.Error(err))
		return RedirectToLogin
	}
	if !loggedIn {
		return RedirectToLogin
	}

	user, err := g.auth.Profile(ctx)
	if err != nil {
		g.log.Info("Profile check failed, clearing login flag", zap.Error(err))
		if cerr := g.flags.Clear(ctx); cerr != nil {
			g.log.Warn("Failed to clear login flag", zap.Error(cerr))
		}
		return RedirectToLogin
	}

	g.users.SetUser(user)
	g.log.Info("Session restored", zap.String("user_id", user.ID))
	return Allow
}

// SignIn authenticates and, for admins only, loads the user and sets the
// login flag
func (g *Guard) SignIn(ctx context.Context, creds model.Credentials) (model.User, error) {
	user, err := g.auth.SignIn(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	if user.Role != model.RoleAdmin {
		g.log.Warn("Non-admin sign-in rejected", zap.String("user_id", user.ID), zap.String("role", user.Role))
		return model.User{}, ErrNotAdmin
	}

	g.users.SetUser(user)
	if err := g.flags.SetLoggedIn(ctx, true); err != nil {
		g.log.Warn("Failed to persist login flag", zap.Error(err))
	}
	g.log.Info("Signed in", zap.String("user_id", user.ID))
	return user, nil
}

// SignUp registers an admin account. The new account still has to sign in.
func (g *Guard) SignUp(ctx context.Context, in model.SignUp) (model.User, error) {
	in.IsAdmin = true
	user, err := g.auth.SignUp(ctx, in)
	if err != nil {
		return model.User{}, err
	}
	if user.Role != model.RoleAdmin {
		return model.User{}, ErrNotAdmin
	}
	g.log.Info("Admin account registered", zap.String("user_id", user.ID))
	return user, nil
}

// SignOut ends the API session. Only when that succeeds are the flag and
// user cleared.
func (g *Guard) SignOut(ctx context.Context) (string, error) {
	msg, err := g.auth.SignOut(ctx)
	if err != nil {
		return "", err
	}
	if err := g.flags.Clear(ctx); err != nil {
		g.log.Warn("Failed to clear login flag", zap.Error(err))
	}
	g.users.ClearUser()
	g.log.Info("Signed out")
	return msg, nil
}

// ErrorMessage is the operator-facing text of a session failure
func ErrorMessage(err error) string {
	if errors.Is(err, ErrNotAdmin) {
		return err.Error()
	}
	return apiclient.Message(err)
}
