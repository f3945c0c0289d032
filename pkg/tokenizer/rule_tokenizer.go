package tokenizer

import (
	"context"
	"sync"
)

var _ Tokenizer = (*RuleTokenizer)(nil)

// RuleConfig 基于规则的分词器配置
type RuleConfig struct {
	NormalizeASCII bool `yaml:"normalize_ascii" json:"normalize_ascii"` // 是否做 ASCII 归一化（œ→oe、破折号等）
	KeepWhitespace bool `yaml:"keep_whitespace" json:"keep_whitespace"` // 分句结果是否保留 token 尾部空白
}

// Clone 实现 TokenizerConfig 接口
func (c *RuleConfig) Clone() TokenizerConfig {
	clone := *c
	return &clone
}

// DefaultRuleConfig 返回默认配置
func DefaultRuleConfig() *RuleConfig {
	return &RuleConfig{
		NormalizeASCII: true,
		KeepWhitespace: false,
	}
}

// RuleTokenizer 基于规则的分词器
//
// It holds nothing but its configuration; every call builds its own
// working state, so one instance can serve many goroutines.
type RuleTokenizer struct {
	mu     sync.RWMutex
	config *RuleConfig
}

// NewRuleTokenizer 创建新的基于规则的分词器
func NewRuleTokenizer(config *RuleConfig) *RuleTokenizer {
	if config == nil {
		config = DefaultRuleConfig()
	}
	return &RuleTokenizer{config: config}
}

// Init 实现 Tokenizer 接口
func (t *RuleTokenizer) Init(ctx context.Context) error {
	return nil
}

// Tokenize 实现 Tokenizer 接口
func (t *RuleTokenizer) Tokenize(text string) []string {
	cfg := t.snapshot()
	return Tokenize(text, cfg.NormalizeASCII)
}

// SentenceTokenize 实现 Tokenizer 接口
func (t *RuleTokenizer) SentenceTokenize(text string) [][]string {
	cfg := t.snapshot()
	return SentenceTokenize(text, cfg.KeepWhitespace, cfg.NormalizeASCII)
}

// Config 实现 Tokenizer 接口
func (t *RuleTokenizer) Config() TokenizerConfig {
	cfg := t.snapshot()
	return cfg.Clone()
}

// SetConfig 实现 Tokenizer 接口
func (t *RuleTokenizer) SetConfig(config TokenizerConfig) error {
	cfg, ok := config.(*RuleConfig)
	if !ok || cfg == nil {
		return ErrInvalidConfig
	}
	t.mu.Lock()
	t.config = cfg.Clone().(*RuleConfig)
	t.mu.Unlock()
	return nil
}

// Close 实现 Tokenizer 接口
func (t *RuleTokenizer) Close() error {
	return nil
}

func (t *RuleTokenizer) snapshot() RuleConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *t.config
}
