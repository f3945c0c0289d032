package trace

import (
	"context"

	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tokenize runs tokenizer.Tokenize inside a "tokenizer.tokenize" span.
func Tokenize(ctx context.Context, text string, normalizeASCII bool) []string {
	_, span := StartSpan(ctx, "tokenizer.tokenize",
		trace.WithAttributes(TokenizerAttrs(len(text), normalizeASCII, true)...),
	)
	defer span.End()

	tokens := tokenizer.Tokenize(text, normalizeASCII)
	span.SetAttributes(attribute.Int(AttrTokenCount, len(tokens)))
	return tokens
}

// SentenceTokenize runs tokenizer.SentenceTokenize inside a
// "tokenizer.sentences" span.
func SentenceTokenize(ctx context.Context, text string, keepWhitespace, normalizeASCII bool) [][]string {
	_, span := StartSpan(ctx, "tokenizer.sentences",
		trace.WithAttributes(TokenizerAttrs(len(text), normalizeASCII, keepWhitespace)...),
	)
	defer span.End()

	sentences := tokenizer.SentenceTokenize(text, keepWhitespace, normalizeASCII)
	span.SetAttributes(
		attribute.Int(AttrSentenceCount, len(sentences)),
		attribute.Int(AttrTokenCount, CountTokens(sentences)),
	)
	return sentences
}

// SentenceTokenizeBatch runs tokenizer.SentenceTokenizeBatch inside a
// "tokenizer.batch" span.
func SentenceTokenizeBatch(ctx context.Context, tok tokenizer.Tokenizer, texts []string, workers int) ([][][]string, error) {
	ctx, span := StartSpan(ctx, "tokenizer.batch",
		trace.WithAttributes(attribute.Int(AttrTextCount, len(texts))),
	)
	defer span.End()

	results, err := tokenizer.SentenceTokenizeBatch(ctx, tok, texts, workers)
	if err != nil {
		RecordError(span, err)
		return nil, err
	}
	total := 0
	for _, sentences := range results {
		total += len(sentences)
	}
	span.SetAttributes(attribute.Int(AttrSentenceCount, total))
	return results, nil
}

// CountTokens returns the number of tokens across all sentences.
func CountTokens(sentences [][]string) int {
	n := 0
	for _, s := range sentences {
		n += len(s)
	}
	return n
}
