// Package extractor 对接外部文档理解服务，从扫描件中提取结构化信件元数据。
package extractor

import (
	"context"
	"errors"

	"courrier/backend/internal/domain"
)

// ErrExtractionFailed 表示提取未产出可用字段。
//
// 传输错误、响应格式错误与服务端报错统一折叠为该错误，
// 不区分可重试与致命原因；是否回退由草稿合并方决定。
var ErrExtractionFailed = errors.New("extraction failed")

// Client 定义文档理解能力的调用契约。
type Client interface {
	// Extract 提取文档元数据，阻塞直至服务响应、失败或超时。
	Extract(ctx context.Context, payload *domain.DocumentPayload) (*domain.ExtractionResult, error)

	Close() error
}
