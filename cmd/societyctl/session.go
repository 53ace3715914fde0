package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"societyBack/internal/client"
	"societyBack/internal/models"
	"societyBack/internal/store"
	"societyBack/internal/thread"
)

// options are the persistent flags shared by every command.
type options struct {
	baseURL  string
	email    string
	password string
	verbose  bool
}

func (o *options) credentials() (string, string) {
	email, password := o.email, o.password
	if email == "" {
		email = os.Getenv("SOCIETY_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SOCIETY_PASSWORD")
	}
	return email, password
}

// session is one CLI invocation: a client, the state it fills and the
// review thread manager running on both.
type session struct {
	api     *client.Client
	store   *store.Store
	threads *thread.Manager
	out     io.Writer
}

type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(message string) {
	fmt.Fprintln(n.w, "!", message)
}

type cliLogger struct {
	l       *log.Logger
	verbose bool
}

func (c cliLogger) Infof(format string, args ...interface{}) {
	if c.verbose {
		c.l.Printf("INFO "+format, args...)
	}
}

func (c cliLogger) Errorf(format string, args ...interface{}) {
	if c.verbose {
		c.l.Printf("ERROR "+format, args...)
	}
}

// openSession signs in when credentials are given and loads the provider
// roster, which review permissions are resolved against.
func openSession(ctx context.Context, o *options, out, errOut io.Writer) (*session, error) {
	api, err := client.New(o.baseURL)
	if err != nil {
		return nil, err
	}
	st := store.New()
	logger := cliLogger{l: log.New(errOut, "", log.Ltime), verbose: o.verbose}

	if email, password := o.credentials(); email != "" {
		user, err := api.SignIn(ctx, email, password)
		if err != nil {
			return nil, fmt.Errorf("sign in: %s", client.MessageOf(err, "Failed to sign in"))
		}
		st.Dispatch(store.ViewerSet{Viewer: store.Viewer{ID: user.ID, Name: user.Name, Role: user.Role, User: user.Summary()}})
	}

	providers, err := api.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load providers: %s", client.MessageOf(err, "Failed to load providers"))
	}
	st.Dispatch(store.ProvidersLoaded{Providers: providers})

	return &session{
		api:     api,
		store:   st,
		threads: thread.NewManager(api, st, writerNotifier{w: errOut}, logger),
		out:     out,
	}, nil
}

func (s *session) requireViewer() (*store.Viewer, error) {
	v := s.store.State().Viewer
	if v == nil {
		return nil, fmt.Errorf("sign in with --email and --password")
	}
	return v, nil
}

func (s *session) providers() []models.Provider {
	return s.store.State().Providers
}
