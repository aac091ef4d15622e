package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"timebox/internal/bootstrap"
	"timebox/internal/platform/auth"
	"timebox/internal/platform/config"
	"timebox/internal/platform/logging"
	"timebox/internal/platform/toast"
	"timebox/internal/ui/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "timebox",
		Short:         "Daily TimeBox planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "timebox.yaml"
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultPath, "config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newSheetCmd(&configPath))
	root.AddCommand(newPrefsCmd(&configPath))
	root.AddCommand(newPickCmd(&configPath))
	root.AddCommand(newTUICmd(&configPath))
	return root
}

// openSession loads the config and resolves the session; toasts go to
// stderr so stdout stays scriptable.
func openSession(cmd *cobra.Command, configPath string) (*bootstrap.Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	styles := theme.For("system")
	toasts := toast.NewTerminalEmitter(cmd.ErrOrStderr(), styles.Toast)
	return bootstrap.OpenSession(cmd.Context(), cfg, toasts)
}

func newServeCmd(configPath *string) *cobra.Command {
	var listen string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the sheet API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			logger := logging.New("timebox", cfg.LogLevel, cfg.LogJSON, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, cleanup, err := bootstrap.NewServer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return srv.Run(ctx)
		},
	}
	serve.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return serve
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for the users section of the config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
