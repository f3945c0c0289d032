package main

import (
	"fmt"
	"strings"

	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/spf13/cobra"
)

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sentences [text]",
		Aliases: []string{"sent"},
		Short:   "Split text into sentences of word tokens",
		Long: `Split text into sentences. With --format lines every sentence is printed on
its own line; --format json prints the nested token lists.

With --per-line each input line is segmented on its own, in parallel.`,
		RunE: runSentences,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("keep-whitespace", false, "Keep trailing whitespace on tokens")
	cmd.Flags().Bool("per-line", false, "Treat every input line as a separate text")
	cmd.Flags().Int("workers", 0, "Parallel texts with --per-line (0 means GOMAXPROCS)")
	return cmd
}

func runSentences(cmd *cobra.Command, args []string) error {
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
	out := cmd.OutOrStdout()

	if perLine, _ := cmd.Flags().GetBool("per-line"); perLine {
		workers, _ := cmd.Flags().GetInt("workers")
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		results, err := tokenizer.SentenceTokenizeBatch(cmd.Context(), tok, lines, workers)
		if err != nil {
			return fmt.Errorf("failed to segment lines: %w", err)
		}
		if format == formatJSON {
			return writeJSON(out, results)
		}
		for _, sentences := range results {
			for _, sentence := range sentences {
				fmt.Fprintln(out, joinWords(sentence))
			}
		}
		return nil
	}

	sentences := tok.SentenceTokenize(text)
	if format == formatJSON {
		return writeJSON(out, sentences)
	}
	for _, sentence := range sentences {
		fmt.Fprintln(out, joinWords(sentence))
	}
	return nil
}
