// Package cli provides the command-line interface for periodo-cli.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/periodo/periodo-cli/internal/api"
	"github.com/periodo/periodo-cli/internal/config"
	"github.com/periodo/periodo-cli/internal/logging"
)

var (
	// Global flags
	serverFlag string
	verbose    bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc

	// tokenStore is replaceable in tests.
	tokenStore config.TokenStore
)

// Version information - injected via LDFLAGS for releases.
var (
	Version   = "v1.2.0-dev"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "periodo",
		Short: "Client for the periodization data service",
		Long: `periodo ` + Version + ` - client for the periodization data service.

Submits, lists, merges, and rejects patches against the service, and
manages bags and graphs. Write operations authenticate with a bearer
token kept in ` + "`~/" + config.TokenFileName + "`" + `.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultLogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				logging.SetGlobalLevel(zerolog.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Server base URL (default "+config.DefaultServerURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newListPatchesCmd())
	rootCmd.AddCommand(newListPermissionsCmd())
	rootCmd.AddCommand(newRefreshTokenCmd())
	rootCmd.AddCommand(newSubmitPatchCmd())
	rootCmd.AddCommand(newMergePatchCmd())
	rootCmd.AddCommand(newRejectPatchCmd())
	rootCmd.AddCommand(newCreateBagCmd())
	rootCmd.AddCommand(newUpdateGraphCmd())
	rootCmd.AddCommand(newDeleteGraphCmd())
	rootCmd.AddCommand(newCreatePatchCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// getTokenStore returns the active token store, defaulting to the file in
// the user's home directory.
func getTokenStore() config.TokenStore {
	if tokenStore == nil {
		tokenStore = config.NewFileTokenStore("")
	}
	return tokenStore
}

// reportError prints handled API failures and swallows them, so the
// process exits 0 after a remote or auth failure that was surfaced to the
// user. Anything else propagates to cobra.
func reportError(cmd *cobra.Command, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindAuthExpired, api.KindRemote, api.KindTransport:
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", apiErr.Message)
			return nil
		}
	}
	return err
}
