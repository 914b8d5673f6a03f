// Package cli implements the tgformat command line.
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgformat"
)

var version = "dev"

var rootQuiet bool

var rootCmd = &cobra.Command{
	Use:   "tgformat",
	Short: "Build Telegram message text and entities",
	Long: `tgformat converts markdown into the plain text plus entity list used by the
Telegram Bot API, and shows which request fields take formatted text.

Examples:
  tgformat md README.md
  echo '**hi**' | tgformat md
  tgformat md notes.md --split 4096
  tgformat md notes.md --method sendPhoto
  tgformat methods sendPoll`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		out := cmd.ErrOrStderr()
		if rootQuiet {
			out = io.Discard
		}
		tgformat.SetLogger(log.New(out, "[tgformat] ", log.LstdFlags))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "tgformat "+version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "suppress log output")
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		tgformat.Logger.Printf("error: %v", err)
		return err
	}
	return nil
}
