package tokenizer

import "errors"

var (
	// ErrInvalidConfig 配置无效错误
	ErrInvalidConfig = errors.New("invalid tokenizer config")

	// ErrInvalidWorkers 并发数无效
	ErrInvalidWorkers = errors.New("tokenizer: workers must not be negative")
)
