package service

import (
	"time"

	"courrier/backend/internal/domain"
)

// NewBaselineDraft 创建带默认值的信件草稿。
//
// 默认：收件、待处理、普通优先级、日期为当天（DD/MM/YYYY）、编号为空。
func NewBaselineDraft(now time.Time) *domain.DraftRecord {
	return &domain.DraftRecord{
		Direction: domain.DirectionIncoming,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityNormal,
		Date:      now.Format(domain.DisplayDateLayout),
		Reference: "",
	}
}

// MergeExtraction 把提取结果合并进草稿。
//
// 寄件人、收件人、主题、摘要无条件覆盖（提取值为空也覆盖）；
// 编号与日期仅在提取到非空值时覆盖；isUrgent 决定优先级；
// PDF 文档置为 ARCHIVED，其余保持 PENDING。
func MergeExtraction(draft *domain.DraftRecord, result *domain.ExtractionResult, mediaType string) {
	draft.Sender = result.Sender
	draft.Recipient = result.Recipient
	draft.Subject = result.Subject
	draft.ContentSummary = result.Summary

	if result.Reference != "" {
		draft.Reference = result.Reference
	}
	if result.Date != "" {
		draft.Date = result.Date
	}

	if result.IsUrgent {
		draft.Priority = domain.PriorityUrgent
	} else {
		draft.Priority = domain.PriorityNormal
	}

	if mediaType == domain.MediaTypePDF {
		draft.Status = domain.StatusArchived
	} else {
		draft.Status = domain.StatusPending
	}
}

// MergeFallback 提取失败时的手动回退合并。
//
// 仅把主题设为文件显示名、日期设为当天，其余字段保持基线值，
// 不填充任何 AI 派生字段。
func MergeFallback(draft *domain.DraftRecord, filename string, now time.Time) {
	draft.Subject = filename
	draft.Date = now.Format(domain.DisplayDateLayout)
}
