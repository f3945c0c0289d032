package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/realtime-ai/textseg/pkg/config"
	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/spf13/cobra"
)

// Output formats
const (
	formatLines = "lines"
	formatJSON  = "json"
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("text", "t", "", "Text to segment")
	cmd.Flags().StringP("file", "f", "", "Read text from file")
	cmd.Flags().String("format", formatLines, "Output format: lines or json")
	cmd.Flags().Bool("no-normalize", false, "Keep œ, æ and dash variants as they are")
}

// readInput takes the text from --text, --file, the positional args or
// stdin, in that order.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return text, nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatLines, formatJSON:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (want %s or %s)", format, formatLines, formatJSON)
}

// ruleConfig layers the command line flags over the loaded config.
func ruleConfig(cmd *cobra.Command, cfg *config.Config) *tokenizer.RuleConfig {
	rc := cfg.Tokenizer
	if noNormalize, _ := cmd.Flags().GetBool("no-normalize"); noNormalize {
		rc.NormalizeASCII = false
	}
	if cmd.Flags().Changed("keep-whitespace") {
		rc.KeepWhitespace, _ = cmd.Flags().GetBool("keep-whitespace")
	}
	return &rc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// joinWords renders tokens as space separated words, dropping their own
// whitespace.
func joinWords(tokens []string) string {
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if word := strings.TrimRightFunc(token, unicode.IsSpace); word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, " ")
}
