package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/client"
	"github.com/ayush/coinlist/backend/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "coinctl:", err)
		stop()
		os.Exit(1)
	}
}

// app holds what every subcommand shares. api and sess are built in the
// root's PersistentPreRunE once flags are parsed.
type app struct {
	url      string
	storage  string
	logLevel string

	api  *client.API
	sess *client.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "coinctl",
		Short:             "Command line client for the coin listing service",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}
	root.PersistentFlags().StringVar(&a.url, "url", getenv("COINCTL_URL", "http://localhost:8080"), "service base URL")
	root.PersistentFlags().StringVar(&a.storage, "storage", os.Getenv("COINCTL_STORAGE"), "session storage file (default ~/.coinctl/storage.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", getenv("COINCTL_LOG_LEVEL", "warn"), "debug, info, warn or error")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.adminCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.coinsCmd(),
		a.promotedCmd(),
		a.submissionsCmd(),
		a.dashboardCmd(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	if a.storage == "" {
		path, err := client.DefaultStoragePath()
		if err != nil {
			return err
		}
		a.storage = path
	}
	log := logging.New(cmd.ErrOrStderr(), a.logLevel, false)
	a.api = client.NewAPI(a.url)
	a.sess = client.NewSession(a.api, client.NewLocalStorage(a.storage), log)
	return nil
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.Login(cmd.Context(), email, password); err != nil {
				return errors.New("Failed to login")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", a.sess.User().Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var email, username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.Register(cmd.Context(), email, username, password); err != nil {
				return errors.New("Failed to register")
			}
			u := a.sess.User()
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "display name, defaults to the email local part")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) adminCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Open an admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.sess.AdminLogin(cmd.Context(), username, password)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return errors.New("Invalid username or password")
			}
			if err != nil {
				return errors.New("Failed to login")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "admin session opened")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "logged out, next: %s\n", a.sess.Logout(cmd.Context()))
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := a.sess.User()
			if u == nil {
				return errors.New("not logged in")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> id=%s\n", u.Username, u.Email, u.ID)
			return nil
		},
	}
}

func (a *app) coinsCmd() *cobra.Command {
	var q catalog.Query
	cmd := &cobra.Command{
		Use:   "coins",
		Short: "List coins with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coins, err := a.api.Coins(cmd.Context(), q)
			if err != nil {
				return err
			}
			printCoins(cmd.OutOrStdout(), coins)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "name or symbol substring")
	cmd.Flags().StringVar(&q.Category, "category", catalog.All, "category filter")
	cmd.Flags().StringVar(&q.Network, "network", catalog.All, "network filter")
	cmd.Flags().StringVar(&q.Sort, "sort", catalog.SortVotes, "votes, newest or marketCap")
	return cmd
}

func (a *app) promotedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promoted",
		Short: "List promoted coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coins, err := a.api.Promoted(cmd.Context())
			if err != nil {
				return err
			}
			printCoins(cmd.OutOrStdout(), coins)
			return nil
		},
	}
}

func (a *app) submissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submissions",
		Short: "List pending submissions (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := a.api.Submissions(cmd.Context(), a.sess.SessionID())
			if err != nil {
				return err
			}
			printSubmissions(cmd.OutOrStdout(), subs)
			return nil
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show admin stats and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.api.Dashboard(cmd.Context(), a.sess.SessionID())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "coins %d  pending %d  votes %d  users %d\n",
				d.Stats.TotalCoins, d.Stats.PendingSubmissions, d.Stats.TotalVotes, d.Stats.TotalUsers)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tCOINS\tVOTES")
			for _, p := range d.Activity {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Date, p.Coins, p.Votes)
			}
			return tw.Flush()
		},
	}
}
