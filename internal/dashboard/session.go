package dashboard

import (
	"context"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/session"
)

// SignedUpMessage is shown once an admin account is registered
const SignedUpMessage = "Signed up successfully, sign in to continue"

// Session holds the login screen writes
type Session struct {
	Guard   *session.Guard
	SignIn  *mutation.Mutation[model.Credentials, model.User]
	SignUp  *mutation.Mutation[model.SignUp, model.User]
	SignOut *mutation.Mutation[struct{}, string]
}

func newSession(e env, guard *session.Guard) *Session {
	s := &Session{Guard: guard}
	s.SignIn = mutate(e, mutation.Config[model.Credentials, model.User]{
		Name:         "session.signin",
		Validate:     model.Credentials.Validate,
		Do:           guard.SignIn,
		ErrorMessage: session.ErrorMessage,
	})
	s.SignUp = mutate(e, mutation.Config[model.SignUp, model.User]{
		Name:           "session.signup",
		Validate:       model.SignUp.Validate,
		Do:             guard.SignUp,
		SuccessMessage: func(model.User) string { return SignedUpMessage },
		ErrorMessage:   session.ErrorMessage,
	})
	s.SignOut = mutate(e, mutation.Config[struct{}, string]{
		Name:           "session.signout",
		Do:             func(ctx context.Context, _ struct{}) (string, error) { return guard.SignOut(ctx) },
		SuccessMessage: func(msg string) string { return msg },
	})
	return s
}
