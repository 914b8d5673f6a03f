package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgformat"
	"github.com/riverfjs/tgformat/markdown"
	"github.com/riverfjs/tgformat/params"
)

var (
	mdSplit         int
	mdMethod        string
	mdBullet        string
	mdOrderedSuffix string
	mdEmojiLinks    bool
	mdTrim          bool
)

var mdCmd = &cobra.Command{
	Use:   "md [file]",
	Short: "Convert markdown to text and entities",
	Long: `Convert markdown to Telegram text and entities and print them as JSON.

The input is read from file, or from stdin when file is omitted or "-".

With --split the result is cut into chunks no longer than N UTF-16 code
units and an array is printed. With --method the result is placed in the
method's main text field (text, caption, ...) and the decomposed request
parameters are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarkdown,
}

func init() {
	mdCmd.Flags().IntVar(&mdSplit, "split", 0, "split into chunks of at most N UTF-16 code units")
	mdCmd.Flags().StringVar(&mdMethod, "method", "", "print decomposed parameters for this Bot API method")
	mdCmd.Flags().StringVar(&mdBullet, "bullet", "-", "marker for unordered list items")
	mdCmd.Flags().StringVar(&mdOrderedSuffix, "ordered-suffix", "", `text after ordered list numbers, e.g. "."`)
	mdCmd.Flags().BoolVar(&mdEmojiLinks, "emoji-links", false, "turn tg://emoji?id= links into custom emoji")
	mdCmd.Flags().BoolVar(&mdTrim, "trim", true, "trim surrounding whitespace")

	rootCmd.AddCommand(mdCmd)
}

func runMarkdown(cmd *cobra.Command, args []string) error {
	source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	f, err := markdown.Convert(source,
		markdown.WithBullet(mdBullet),
		markdown.WithOrderedSuffix(mdOrderedSuffix),
		markdown.WithCustomEmojiLinks(mdEmojiLinks),
	)
	if err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}
	if mdTrim {
		f = f.TrimSpace()
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}

	var field string
	if mdMethod != "" {
		field, err = mainField(mdMethod)
		if err != nil {
			return err
		}
	}

	wrap := func(f tgformat.Formattable) any {
		if field == "" {
			return f
		}
		return params.Decompose(mdMethod, map[string]any{field: f})
	}

	var out any
	if mdSplit > 0 {
		chunks := f.Split(mdSplit)
		items := make([]any, 0, len(chunks))
		for _, c := range chunks {
			items = append(items, wrap(c))
		}
		out = items
	} else {
		out = wrap(f)
	}

	return writeJSON(cmd.OutOrStdout(), out)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// mainField returns the top level text field of method.
func mainField(method string) (string, error) {
	rules, err := params.Rules(method)
	if err != nil {
		return "", err
	}
	for _, r := range rules {
		if r.At == "" {
			return r.Text, nil
		}
	}
	return "", fmt.Errorf("method %s has no top level text field", method)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
