package commands

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// PasswordEnv supplies the password non-interactively.
const PasswordEnv = "PREPDECK_PASSWORD"

func loginCmd(a *app) *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, creds.Password)
			if err != nil {
				return err
			}
			creds.Password = pw
			tok, err := a.svc.Auth.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			a.session.Set(tok.AccessToken)
			return writef(printer(cmd), "Signed in as %s\n", tok.User.Email)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prefer $"+PasswordEnv+" or stdin)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var req model.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, req.Password)
			if err != nil {
				return err
			}
			req.Password = pw
			tok, err := a.svc.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.session.Set(tok.AccessToken)
			return writef(printer(cmd), "Welcome, %s. You're signed in.\n", tok.User.FirstName())
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prefer $"+PasswordEnv+" or stdin)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Invalidate(cmd.Context())
			return writeln(printer(cmd), "Signed out")
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			u, err := a.svc.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), u, func(w io.Writer) error {
				return writef(w, "%s <%s>\nplan: %s\n", orDash(u.FullName), u.Email, orDash(string(u.Plan)))
			})
		},
	}
}

// readPassword prefers the flag, then the environment, then one stdin line.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}
	if err := writef(cmd.ErrOrStderr(), "Password: "); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
