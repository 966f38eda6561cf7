package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in, run `cinerate login` first")

// prompt reads one line from stdin when a value was not given as a flag.
func (c *cli) prompt(label string) (string, error) {
	if c.stdin == nil {
		c.stdin = bufio.NewReader(c.in)
	}
	fmt.Fprint(c.out, label+": ")
	line, err := c.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a password without echoing it when stdin is a terminal.
// Piped input is read like any other line.
func (c *cli) promptSecret(label string) (string, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.prompt(label)
	}
	fmt.Fprint(c.out, label+": ")
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = c.prompt("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.promptSecret("Password"); err != nil {
					return err
				}
			}

			s, err := c.app.API.Auth.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return err
			}
			return c.emit(s.User, func() string {
				return "Logged in as " + s.User.DisplayName()
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var req user.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Password == "" {
				if req.Password, err = c.promptSecret("Password"); err != nil {
					return err
				}
			}
			if req.ConfirmPassword == "" {
				if req.ConfirmPassword, err = c.promptSecret("Confirm password"); err != nil {
					return err
				}
			}

			confirmation, err := c.app.API.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if confirmation == "" {
				confirmation = "Account created. You can log in now."
			}
			return c.emit(map[string]string{"message": confirmation}, func() string {
				return confirmation
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email")
	cmd.Flags().StringVar(&req.Nickname, "nickname", "", "Public nickname")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "Password again (prompted when omitted)")
	for _, name := range []string{"name", "email", "nickname"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.API.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := c.app.API.Auth.CurrentUser(cmd.Context())
			if u == nil {
				return errNotLoggedIn
			}
			return c.emit(u, func() string {
				rows := [][]string{
					{"Name", u.Name},
					{"Email", u.Email},
					{"Nickname", u.Handle},
					{"Role", u.Role},
				}
				return renderTable([]string{"FIELD", "VALUE"}, rows)
			})
		},
	}
}
