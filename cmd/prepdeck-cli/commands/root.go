// Package commands implements the prepdeck command-line client.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/bootstrap"
	"github.com/prepdeck/prepdeck-web/internal/tokenfile"
)

// HomeEnv overrides the default ~/.prepdeck home directory.
const HomeEnv = "PREPDECK_HOME"

// app is the state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	home       string
	backendURL string
	verbose    bool
	jsonOut    bool

	cfg     config.AppConfig
	logger  *slog.Logger
	tokens  *tokenfile.Store
	session *backend.MemorySession
	obs     bootstrap.ObservabilityContainer
	svc     bootstrap.ServiceContainer
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", describeError(err))
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "prepdeck",
		Short:         "Prepdeck interview prep from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.obs.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.home, "home", "", "config directory (default $"+HomeEnv+" or ~/.prepdeck)")
	root.PersistentFlags().StringVar(&a.backendURL, "backend", "", "backend base URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print raw JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		plansCmd(a),
		subscriptionCmd(a),
		usageCmd(a),
		historyCmd(a),
		checkCmd(a),
		checkoutCmd(a),
		cancelCmd(a),
		reactivateCmd(a),
		portalCmd(a),
		jobsCmd(a),
		resumesCmd(a),
		interviewsCmd(a),
		questionsCmd(a),
		analysisCmd(a),
		liveCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logOut := io.Discard
	if a.verbose {
		logOut = cmd.ErrOrStderr()
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	home, err := resolveHome(a.home)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(home, 0o700); err != nil {
		return fmt.Errorf("create home dir: %w", err)
	}
	a.home = home

	a.cfg, err = bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if a.backendURL != "" {
		a.cfg.Backend.BaseURL = strings.TrimRight(a.backendURL, "/")
	}
	if a.cfg.Backend.BaseURL == "" {
		return errors.New("backend URL is required (set API_BASE_URL or --backend)")
	}

	a.tokens = tokenfile.New(home)
	a.session, err = a.tokens.Session(a.logger)
	if err != nil {
		return err
	}
	a.obs = bootstrap.BuildObservability(a.logger, a.cfg.Observability)

	stderr := cmd.ErrOrStderr()
	a.svc = bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:        &a.cfg,
		Observability: a.obs,
		Session:       a.session,
		OnSessionExpired: func(context.Context) {
			fmt.Fprintln(stderr, "Your session has expired. Run `prepdeck login` to sign in again.")
		},
		Logger: a.logger,
	})
	return nil
}

func resolveHome(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		return env, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(dir, ".prepdeck"), nil
}

// requireSignedIn fails fast instead of sending an anonymous request.
func (a *app) requireSignedIn() error {
	if !a.session.SignedIn() {
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in; run `prepdeck login`")

func describeError(err error) string {
	if errors.Is(err, backend.ErrUnauthorized) {
		return "session expired; run `prepdeck login`"
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		return backend.Message(apiErr)
	}
	return err.Error()
}

// printer returns the command's stdout.
func printer(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

// signedInGroup is a parent command whose children all need a token.
// Cobra runs only the nearest PersistentPreRunE, so it repeats setup.
func signedInGroup(a *app, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.requireSignedIn()
		},
	}
}
