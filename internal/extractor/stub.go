package extractor

import (
	"context"

	"courrier/backend/internal/domain"
)

// StubClient 在没有 GCP 凭证的环境下使用的占位客户端。
//
// 每次调用都返回 ErrExtractionFailed，从而让录入流水线走回退路径，
// 便于本地开发验证整条链路。
type StubClient struct{}

// NewStubClient 创建占位提取客户端。
func NewStubClient() *StubClient {
	return &StubClient{}
}

// Extract 恒定失败。
func (c *StubClient) Extract(ctx context.Context, payload *domain.DocumentPayload) (*domain.ExtractionResult, error) {
	return nil, ErrExtractionFailed
}

// Close 无资源可释放。
func (c *StubClient) Close() error {
	return nil
}
