package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"courrier/backend/internal/document"
	"courrier/backend/internal/domain"
	"courrier/backend/internal/extractor"
	"courrier/backend/internal/monitoring"
)

// ErrIntakeBusy 表示已有录入会话在进行中。
var ErrIntakeBusy = errors.New("intake session already in flight")

// IntakeService 封装文档录入流水线：编码 → 提取 → 合并/回退。
//
// 同一时刻至多允许一个录入会话；提取失败被回退路径吸收，
// 流水线总能产出一份可展示的草稿。
type IntakeService struct {
	extractor extractor.Client
	timeout   time.Duration
	metrics   *monitoring.Metrics
	log       *zap.Logger

	mu   sync.Mutex
	busy bool
}

// NewIntakeService 创建录入业务服务。
func NewIntakeService(client extractor.Client, timeout time.Duration, metrics *monitoring.Metrics, log *zap.Logger) *IntakeService {
	return &IntakeService{
		extractor: client,
		timeout:   timeout,
		metrics:   metrics,
		log:       log,
	}
}

// ScanInput 定义一次文档录入的输入。
type ScanInput struct {
	Reader    io.Reader // 文件字节
	MediaType string    // 声明的媒体类型
	Filename  string    // 显示名（回退时用作主题）
}

// Scan 执行录入流水线并返回待用户确认的草稿。
//
// 编码失败与不支持的媒体类型直接返回错误（无部分草稿）；
// 提取失败不向调用方暴露，表现为字段较少的回退草稿。
func (s *IntakeService) Scan(ctx context.Context, input ScanInput) (*domain.DraftRecord, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	payload, err := document.Encode(input.Reader, input.MediaType, input.Filename)
	if err != nil {
		return nil, err
	}

	draft := NewBaselineDraft(time.Now())

	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.extractor.Extract(extractCtx, payload)
	if err != nil {
		// 提取失败走手动回退，不阻断录入
		s.log.Warn("extraction failed, falling back to manual draft",
			zap.String("filename", input.Filename),
			zap.String("media_type", input.MediaType),
			zap.Error(err),
		)
		MergeFallback(draft, input.Filename, time.Now())
		if s.metrics != nil {
			s.metrics.RecordExtractionFailure()
		}
	} else {
		MergeExtraction(draft, result, payload.MediaType)
	}

	// 无论提取是否成功，附上载荷保证文档可预览
	draft.Attachment = payload

	return draft, nil
}

// acquire 占用录入会话，已有会话在途时返回 ErrIntakeBusy。
func (s *IntakeService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrIntakeBusy
	}
	s.busy = true
	return nil
}

// release 释放录入会话。
func (s *IntakeService) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}
