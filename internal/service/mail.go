package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"courrier/backend/internal/domain"
	"courrier/backend/internal/storage"
)

var (
	ErrSubjectRequired = errors.New("subject is required")
	ErrSenderRequired  = errors.New("sender is required")
)

// 自动生成编号的随机数上限（REF-0 到 REF-99999）。
const referenceRandomBound = 100000

// MailService 封装信件登记册的业务操作。
type MailService struct {
	repo storage.RegistryRepository

	mu     sync.Mutex
	random *rand.Rand
}

// NewMailService 创建信件业务服务。
func NewMailService(repo storage.RegistryRepository) *MailService {
	return &MailService{
		repo:   repo,
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Commit 校验草稿并将其提升为登记册中的正式记录。
//
// 前置条件：主题与寄件人非空，否则返回校验错误且登记册不变。
// 成功时分配全新 ID；编号为空则生成 REF-<随机数> 占位；
// PDF 附件无条件强制 ARCHIVED 状态；记录插入登记册头部。
func (s *MailService) Commit(draft *domain.DraftRecord) (*domain.MailRecord, error) {
	if draft.Subject == "" {
		return nil, ErrSubjectRequired
	}
	if draft.Sender == "" {
		return nil, ErrSenderRequired
	}

	now := time.Now().UTC()

	record := &domain.MailRecord{
		ID:             uuid.NewString(),
		Reference:      draft.Reference,
		Direction:      draft.Direction,
		Status:         draft.Status,
		Priority:       draft.Priority,
		Sender:         draft.Sender,
		Recipient:      draft.Recipient,
		Subject:        draft.Subject,
		Date:           draft.Date,
		ContentSummary: draft.ContentSummary,
		TrackingNumber: draft.TrackingNumber,
		Attachment:     draft.Attachment,
		CreatedAt:      now,
	}

	// 缺省字段补齐，与录入表单的基线一致
	if record.Reference == "" {
		record.Reference = s.generateReference()
	}
	if record.Direction == "" {
		record.Direction = domain.DirectionIncoming
	}
	if record.Status == "" {
		record.Status = domain.StatusPending
	}
	if record.Priority == "" {
		record.Priority = domain.PriorityNormal
	}
	if record.Date == "" {
		record.Date = now.Format(domain.DisplayDateLayout)
	}

	// 硬性业务规则：PDF 文档一律归档，覆盖草稿中的任何状态
	if record.Attachment.IsPDF() {
		record.Status = domain.StatusArchived
	}

	if err := s.repo.InsertMailRecord(record); err != nil {
		return nil, err
	}

	return record, nil
}

// Get 根据 ID 获取信件记录。
func (s *MailService) Get(id string) (*domain.MailRecord, error) {
	return s.repo.GetMailRecord(id)
}

// List 返回全部信件快照（最新在前）。
func (s *MailService) List() []domain.MailRecord {
	return s.repo.ListMailRecords()
}

// generateReference 生成 REF-<随机数字> 形式的占位编号。
//
// 不保证唯一，唯一性由记录 ID 承担。
func (s *MailService) generateReference() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("REF-%d", s.random.Intn(referenceRandomBound))
}
