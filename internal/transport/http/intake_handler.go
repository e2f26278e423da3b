package httptransport

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courrier/backend/internal/document"
	"courrier/backend/internal/monitoring"
	"courrier/backend/internal/service"
)

// IntakeHandler 处理文档录入相关请求。
type IntakeHandler struct {
	intake  *service.IntakeService
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewIntakeHandler 创建录入处理器。
func NewIntakeHandler(intake *service.IntakeService, metrics *monitoring.Metrics, log *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		intake:  intake,
		metrics: metrics,
		log:     log,
	}
}

// Scan 接收上传的扫描件并返回待确认的草稿。
//
// POST /v1/intake/scan（multipart 字段 "document"）
//
// 编码失败与不支持的媒体类型返回 400，会话冲突返回 409；
// 提取失败对调用方不可见，返回的是回退草稿。
func (h *IntakeHandler) Scan(c *gin.Context) {
	start := time.Now()

	fileHeader, err := c.FormFile("document")
	if err != nil {
		BadRequest(c, MsgMissingDocument)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, GetErrorMessage(document.ErrUnreadableDocument))
		return
	}
	defer file.Close()

	mediaType := fileHeader.Header.Get("Content-Type")

	draft, err := h.intake.Scan(c.Request.Context(), service.ScanInput{
		Reader:    file,
		MediaType: mediaType,
		Filename:  fileHeader.Filename,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIntakeBusy):
			Conflict(c, GetErrorMessage(service.ErrIntakeBusy))
		case errors.Is(err, document.ErrUnsupportedMediaType):
			BadRequest(c, GetErrorMessage(document.ErrUnsupportedMediaType))
		case errors.Is(err, document.ErrEmptyDocument):
			BadRequest(c, GetErrorMessage(document.ErrEmptyDocument))
		case errors.Is(err, document.ErrUnreadableDocument):
			BadRequest(c, GetErrorMessage(document.ErrUnreadableDocument))
		default:
			h.log.Error("scan pipeline failed", zap.Error(err))
			InternalError(c, MsgScanFailed)
		}
		return
	}

	h.metrics.RecordScan(time.Since(start))

	Success(c, draft)
}
