package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

// Register prompts for the account fields and creates the account. It does
// not log the new user in.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	req.Password = string(password)
	if req.Country, err = getSimpleText(a.reader, "Enter country (optional)", a.out); err != nil {
		return err
	}
	if req.Hobby, err = getSimpleText(a.reader, "Enter hobby (optional)", a.out); err != nil {
		return err
	}

	user, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}

	a.printf("Registered %s (id %d). Use 'login' to sign in.\n", user.Name, user.ID)
	return nil
}

// Login prompts for credentials and signs in. The session is remembered by
// the client for every later request.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, ok := a.currentSession(ctx)
	if !ok {
		return errNotLoggedIn
	}
	a.printf("%s <%s> (id %d)\n", sess.Name, sess.Email, sess.ID)
	if sess.Country != "" {
		a.printf("Country: %s\n", sess.Country)
	}
	if sess.Hobby != "" {
		a.printf("Hobby: %s\n", sess.Hobby)
	}
	return nil
}

func (a *App) getStatus() string {
	var parts []string
	if sess, ok := a.currentSession(context.Background()); ok {
		parts = append(parts, sess.Name)
	}
	if m := a.getMode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ") "
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
