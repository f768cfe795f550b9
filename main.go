package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bookstore-inventory/config"
	"bookstore-inventory/console"
	"bookstore-inventory/inventory"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bookstore",
		Short:         "Bookstore inventory and account manager",
		Long:          "Log in, then enter, update, delete, search and report on the bookstore's books. The admin account can also add users and reset passwords.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(cfg *config.Config, mgr *inventory.Manager) error {
				return runSession(cfg, mgr, os.Stdin, cmd.OutOrStdout(), int(os.Stdin.Fd()))
			})
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newLowStockCommand())
	return cmd
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema and seed data if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(cfg *config.Config, mgr *inventory.Manager) error {
				books, err := mgr.Database().CountBooks()
				if err != nil {
					return err
				}
				accounts, err := mgr.Database().CountAccounts()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database %s ready: %d books, %d accounts.\n", cfg.DatabasePath, books, accounts)
				return nil
			})
		},
	}
}

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Export the inventory report without logging in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(cfg *config.Config, mgr *inventory.Manager) error {
				n, err := mgr.ExportReport(cfg.ReportPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inventory report exported as '%s' (%d books).\n", cfg.ReportPath, n)
				return nil
			})
		},
	}
}

func newLowStockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List books below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(cfg *config.Config, mgr *inventory.Manager) error {
				books, err := mgr.LowStock()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(books) == 0 {
					fmt.Fprintf(out, "All books are well-stocked (Qty >= %d).\n", cfg.LowStockThreshold)
					return nil
				}
				for _, b := range books {
					fmt.Fprintf(out, "ID: %d | Title: %s | Qty: %d\n", b.ID, b.Title, b.Qty)
				}
				return nil
			})
		},
	}
}

// withManager loads configuration, sets up logging, opens and initializes the
// database, and hands the manager to fn.
func withManager(cmd *cobra.Command, fn func(*config.Config, *inventory.Manager) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)

	mgr, err := inventory.NewManager(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer mgr.Close()
	mgr.SetLowStockThreshold(cfg.LowStockThreshold)

	adminCreated, err := mgr.Initialize()
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	if adminCreated {
		fmt.Fprintf(cmd.OutOrStdout(), "Admin account created: username = %s, password = %s\n",
			inventory.AdminUsername, inventory.AdminPassword)
	}

	return fn(cfg, mgr)
}

func runSession(cfg *config.Config, mgr *inventory.Manager, in io.Reader, out io.Writer, fd int) error {
	term := console.NewTerminal(in, out, fd)

	session, err := console.Authenticate(term, out, mgr)
	if errors.Is(err, console.ErrInputClosed) {
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("session started", "user", session.Username, "role", session.Role)

	err = console.NewDispatcher(mgr, session, term, out, cfg.ReportPath).Run()
	if errors.Is(err, console.ErrInputClosed) {
		return nil
	}
	return err
}

func setupLogging(w io.Writer, level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}
