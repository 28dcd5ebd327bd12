package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"procure.GO/config"
	"procure.GO/core/errs"
	"procure.GO/service/account"
)

// Version is set at build time with -ldflags "-X procure.GO/cmd.Version=...".
var Version = "dev"

var (
	storageFlag string
	auditFlag   string
	actorFlag   string
)

var rootCmd = &cobra.Command{
	Use:           "procure",
	Short:         "Inventory and procurement records kept in flat files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the banner and version",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		fig := figure.NewFigure(config.AppConfig.AppName, "small", true)
		fmt.Fprintln(cmd.OutOrStdout(), fig.String())
		fmt.Fprintf(cmd.OutOrStdout(), "version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "storage root (overrides STORAGE_ROOT)")
	rootCmd.PersistentFlags().StringVar(&auditFlag, "audit", "", "audit driver: sqlite, mysql or off (overrides AUDIT_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "as", "", "ID of the user performing the action")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI and exits with a status derived from the error kind.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if errors.Is(err, account.ErrInvalidCredentials) {
		return 7
	}
	switch errs.KindOf(err) {
	case errs.KindInvalidInput:
		return 2
	case errs.KindNotFound:
		return 3
	case errs.KindInvalidState:
		return 4
	case errs.KindInsufficientStock:
		return 5
	case errs.KindDuplicateKey:
		return 6
	}
	return 1
}
