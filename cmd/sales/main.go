// Package main runs the sales service.
//
// Usage:
//
//	sales serve --config ./configs/config.local.yaml
//	sales hash-password --cost 12 <password>
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sokol111/ecommerce-sales/internal/app"
	"github.com/Sokol111/ecommerce-sales/pkg/core"
	"github.com/Sokol111/ecommerce-sales/pkg/security/basic"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sales",
		Short:         "Sales pricing service",
		Long:          `sales calculates discounted selling prices and reports failures as RFC 7807 problem documents.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(), newHashPasswordCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	var configPaths []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until SIGINT or SIGTERM.

Configuration is read from the --config files, merged in order, or from
CONFIG_FILE when the flag is not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var coreOpts []core.Option
			if len(configPaths) > 0 {
				coreOpts = append(coreOpts, core.WithConfigFile(configPaths...))
			}
			fx.New(app.NewSalesApp(app.WithCoreOptions(coreOpts...))).Run()
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&configPaths, "config", "c", nil, "Config files, later ones override earlier (overrides CONFIG_FILE)")

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for security.basic.users",
		Long: `Print a bcrypt hash for the password-hash field of security.basic.users.

The password is read from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := basic.HashPassword(password, cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (default 10)")

	return cmd
}

func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
