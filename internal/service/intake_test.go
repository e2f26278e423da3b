package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courrier/backend/internal/document"
	"courrier/backend/internal/domain"
	"courrier/backend/internal/extractor"
)

// fakeExtractor 可编程的提取客户端，用于模拟成功、失败与阻塞。
type fakeExtractor struct {
	result  *domain.ExtractionResult
	err     error
	started chan struct{} // 非 nil 时在进入 Extract 后发送信号
	release chan struct{} // 非 nil 时阻塞等待释放
}

func (f *fakeExtractor) Extract(ctx context.Context, payload *domain.DocumentPayload) (*domain.ExtractionResult, error) {
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeExtractor) Close() error { return nil }

func TestIntakeService_Scan(t *testing.T) {
	log := zap.NewNop()

	t.Run("提取成功返回合并后的草稿", func(t *testing.T) {
		fake := &fakeExtractor{
			result: &domain.ExtractionResult{
				Sender:   "EDF France",
				Subject:  "Facture d'électricité",
				IsUrgent: true,
			},
		}
		svc := NewIntakeService(fake, time.Second, nil, log)

		draft, err := svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("fake-image"),
			MediaType: "image/jpeg",
			Filename:  "scan.jpg",
		})

		require.NoError(t, err)
		assert.Equal(t, "EDF France", draft.Sender)
		assert.Equal(t, "Facture d'électricité", draft.Subject)
		assert.Equal(t, domain.PriorityUrgent, draft.Priority)
		assert.Equal(t, domain.StatusPending, draft.Status)
		require.NotNil(t, draft.Attachment)
		assert.Equal(t, "scan.jpg", draft.Attachment.Filename)
	})

	t.Run("提取失败返回回退草稿", func(t *testing.T) {
		fake := &fakeExtractor{err: extractor.ErrExtractionFailed}
		svc := NewIntakeService(fake, time.Second, nil, log)

		draft, err := svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("fake-image"),
			MediaType: "image/jpeg",
			Filename:  "photo_courrier.jpg",
		})

		// 提取失败对调用方不可见
		require.NoError(t, err)
		assert.Equal(t, "photo_courrier.jpg", draft.Subject)
		assert.Empty(t, draft.Sender)
		assert.Empty(t, draft.ContentSummary)
		require.NotNil(t, draft.Attachment)
	})

	t.Run("提取超时走回退路径", func(t *testing.T) {
		fake := &fakeExtractor{release: make(chan struct{})}
		svc := NewIntakeService(fake, 20*time.Millisecond, nil, log)

		draft, err := svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("fake-image"),
			MediaType: "image/png",
			Filename:  "slow.png",
		})

		require.NoError(t, err)
		assert.Equal(t, "slow.png", draft.Subject)
	})

	t.Run("编码失败直接返回错误", func(t *testing.T) {
		svc := NewIntakeService(&fakeExtractor{}, time.Second, nil, log)

		_, err := svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("hello"),
			MediaType: "text/plain",
			Filename:  "note.txt",
		})

		assert.ErrorIs(t, err, document.ErrUnsupportedMediaType)
	})

	t.Run("并发扫描返回会话冲突", func(t *testing.T) {
		fake := &fakeExtractor{
			started: make(chan struct{}, 1),
			release: make(chan struct{}),
			result:  &domain.ExtractionResult{Subject: "lettre"},
		}
		svc := NewIntakeService(fake, time.Second, nil, log)

		firstDone := make(chan error, 1)
		go func() {
			_, err := svc.Scan(context.Background(), ScanInput{
				Reader:    strings.NewReader("first"),
				MediaType: "image/jpeg",
				Filename:  "first.jpg",
			})
			firstDone <- err
		}()

		// 等第一次扫描占用会话后再发起第二次
		<-fake.started

		_, err := svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("second"),
			MediaType: "image/jpeg",
			Filename:  "second.jpg",
		})
		assert.ErrorIs(t, err, ErrIntakeBusy)

		close(fake.release)
		require.NoError(t, <-firstDone)

		// 会话释放后可以继续扫描
		_, err = svc.Scan(context.Background(), ScanInput{
			Reader:    strings.NewReader("third"),
			MediaType: "image/jpeg",
			Filename:  "third.jpg",
		})
		assert.NoError(t, err)
	})
}
