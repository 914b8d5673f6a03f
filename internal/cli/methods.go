package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riverfjs/tgformat/params"
)

var methodsCmd = &cobra.Command{
	Use:   "methods [method]",
	Short: "List Bot API methods with formatted fields",
	Long: `Without arguments, list every Bot API method that has fields taking
formatted text. With a method name, print its rules as YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMethods,
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}

func runMethods(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, m := range params.Methods() {
			fmt.Fprintln(out, m)
		}
		return nil
	}

	rules, err := params.Rules(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	_, err = out.Write(data)
	return err
}
