package storage

import (
	"courrier/backend/internal/domain"
)

// RegistryRepository 定义信件登记册的存取操作。
//
// 登记册按入册顺序倒序排列（最新在前），仅支持追加，不提供删除。
type RegistryRepository interface {
	InsertMailRecord(record *domain.MailRecord) error
	GetMailRecord(id string) (*domain.MailRecord, error)
	ListMailRecords() []domain.MailRecord
	FilterMailRecords(criteria domain.FilterCriteria) []domain.MailRecord
	ComputeStats() domain.MailStats
	Count() int
}

// Store 聚合登记册存储的全部能力。
type Store interface {
	RegistryRepository

	Close() error
	Health() error
}
