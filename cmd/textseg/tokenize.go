package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [text]",
		Short: "Split text into word tokens",
		Long: `Split text into word tokens. With --format lines every token is printed on
its own line without its trailing whitespace; --format json prints the exact
tokens.`,
		RunE: runTokenize,
	}
	addInputFlags(cmd)
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	tok := tokenizer.NewRuleTokenizer(ruleConfig(cmd, cfg))
	defer tok.Close()
	tokens := tok.Tokenize(text)

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, tokens)
	}
	for _, token := range tokens {
		if word := strings.TrimRightFunc(token, unicode.IsSpace); word != "" {
			fmt.Fprintln(out, word)
		}
	}
	return nil
}
