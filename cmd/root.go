package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yuri91/swaystart/internal/config"
	"github.com/yuri91/swaystart/internal/logging"
	"github.com/yuri91/swaystart/internal/output"
	"github.com/yuri91/swaystart/internal/sway"
)

var rootCmd = &cobra.Command{
	Use:   "swaystart",
	Short: "Save and replay sway tiling layouts",
	Long: `swaystart captures the tiling layout of a running sway session and
replays it later: the saved tree is rebuilt out of placeholder windows,
and each placeholder is swapped for the matching real window as it
appears.`,
}

// log is the process logger, configured by the root command's --debug
// flag before any subcommand runs.
var log = zap.NewNop()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = "0.2.0"
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		log = logging.New(debug)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			format = "yaml"
		}
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}

// dialClient opens the command connection, honoring a configured socket
// override before falling back to SWAYSOCK/I3SOCK.
func dialClient(cfg *config.Config) (*sway.Client, error) {
	if cfg.Socket != "" {
		return sway.DialPath(cfg.Socket)
	}
	return sway.Dial()
}

// subscribeEvents opens the dedicated event-subscription connection.
func subscribeEvents(cfg *config.Config) (*sway.EventStream, error) {
	if cfg.Socket != "" {
		return sway.SubscribePath(cfg.Socket)
	}
	return sway.Subscribe()
}
