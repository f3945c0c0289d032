// Package tokenizer splits raw text into word tokens and groups the tokens
// into sentences using layered heuristics: pattern rules, abbreviation
// lookup, quote and bracket matching, and punctuation lookahead.
//
// Tokenization is reversible: the tokens of a text concatenate back to the
// (optionally ASCII-normalized) input, with whitespace attached to the token
// that precedes it.
//
//	tokenizer.Tokenize("(in 2008) you'll see.", true)
//	// ["(" "in " "2008" ") " "you" "'ll " "see" "."]
//
// All functions are safe for concurrent use; the only shared state is the
// read-only rule table.
package tokenizer

import "context"

// TokenizerConfig 分词器配置接口
type TokenizerConfig interface {
	// Clone 克隆配置
	Clone() TokenizerConfig
}

// Tokenizer 分词器接口
type Tokenizer interface {
	// Init 初始化分词器
	Init(ctx context.Context) error

	// Tokenize 将文本切分为词级 token
	Tokenize(text string) []string

	// SentenceTokenize 将文本切分为句子，每个句子是一组 token
	SentenceTokenize(text string) [][]string

	// Config 获取分词器配置
	Config() TokenizerConfig

	// SetConfig 设置分词器配置
	SetConfig(config TokenizerConfig) error

	// Close 关闭分词器，释放资源
	Close() error
}
