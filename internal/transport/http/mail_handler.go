package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courrier/backend/internal/domain"
	"courrier/backend/internal/monitoring"
	"courrier/backend/internal/service"
	"courrier/backend/internal/storage"
	"courrier/backend/internal/storage/memory"
	"courrier/backend/internal/websocket"
)

// MailHandler 处理信件登记册相关请求。
type MailHandler struct {
	mails   *service.MailService
	views   *service.ViewService
	store   storage.Store
	hub     *websocket.Hub
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewMailHandler 创建信件处理器。
func NewMailHandler(
	mails *service.MailService,
	views *service.ViewService,
	store storage.Store,
	hub *websocket.Hub,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *MailHandler {
	return &MailHandler{
		mails:   mails,
		views:   views,
		store:   store,
		hub:     hub,
		metrics: metrics,
		log:     log,
	}
}

// Commit 将确认后的草稿登记为正式信件记录。
//
// POST /v1/mails
//
// 缺少主题或寄件人返回 422，成功返回 201 与完整记录。
func (h *MailHandler) Commit(c *gin.Context) {
	var draft domain.DraftRecord
	if err := c.ShouldBindJSON(&draft); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	record, err := h.mails.Commit(&draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectRequired), errors.Is(err, service.ErrSenderRequired):
			h.metrics.RecordCommitRejected()
			UnprocessableEntity(c, GetErrorMessage(err))
		default:
			h.log.Error("commit mail record failed", zap.Error(err))
			InternalError(c, MsgCommitFailed)
		}
		return
	}

	h.metrics.RecordCommit(record.Status == domain.StatusArchived, h.store.Count())
	h.hub.BroadcastMailCreated(record, h.views.Stats())

	h.log.Info("mail record committed",
		zap.String("id", record.ID),
		zap.String("reference", record.Reference),
		zap.String("direction", string(record.Direction)),
		zap.String("status", string(record.Status)),
	)

	Created(c, record)
}

// List 按选项卡与关键字过滤信件列表。
//
// GET /v1/mails?tab=&q=
func (h *MailHandler) List(c *gin.Context) {
	tab, err := domain.ParseTab(c.Query("tab"))
	if err != nil {
		BadRequest(c, MsgInvalidTab)
		return
	}

	records := h.views.Filter(tab, c.Query("q"))

	Success(c, records)
}

// Get 按 ID 查询单条信件记录。
//
// GET /v1/mails/:id
func (h *MailHandler) Get(c *gin.Context) {
	record, err := h.mails.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, memory.ErrMailRecordNotFound) {
			NotFound(c, MsgMailNotFound)
			return
		}
		h.log.Error("get mail record failed", zap.Error(err))
		InternalError(c, MsgInternalError)
		return
	}

	Success(c, record)
}

// Stats 返回登记册统计数据。
//
// GET /v1/stats
func (h *MailHandler) Stats(c *gin.Context) {
	Success(c, h.views.Stats())
}
