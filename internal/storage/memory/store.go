package memory

import (
	"errors"
	"sync"

	"courrier/backend/internal/domain"
)

var (
	ErrMailRecordNotFound = errors.New("mail record not found")
	ErrDuplicateID        = errors.New("duplicate mail record id")
)

// Store 使用内存保存信件登记册，进程生命周期内有效。
//
// records 按入册顺序倒序排列（最新在前）；byID 提供 O(1) 查找。
type Store struct {
	mu      sync.RWMutex
	records []*domain.MailRecord
	byID    map[string]*domain.MailRecord
}

// NewStore 创建一个内存登记册实例。
func NewStore() *Store {
	return &Store{
		records: make([]*domain.MailRecord, 0),
		byID:    make(map[string]*domain.MailRecord),
	}
}

// InsertMailRecord 将记录插入登记册头部（最新在前）。
//
// ID 冲突时返回 ErrDuplicateID，登记册保持不变。
func (s *Store) InsertMailRecord(record *domain.MailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[record.ID]; exists {
		return ErrDuplicateID
	}

	s.records = append([]*domain.MailRecord{record}, s.records...)
	s.byID[record.ID] = record
	return nil
}

// GetMailRecord 根据 ID 获取信件记录。
func (s *Store) GetMailRecord(id string) (*domain.MailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, ErrMailRecordNotFound
	}

	copied := *record
	return &copied, nil
}

// ListMailRecords 返回全部信件的快照，保持登记册顺序。
func (s *Store) ListMailRecords() []domain.MailRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MailRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, *record)
	}
	return out
}

// Count 返回登记册中的记录总数。
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close 关闭存储（内存实现无资源可释放）。
func (s *Store) Close() error {
	return nil
}

// Health 存储健康检查。
func (s *Store) Health() error {
	return nil
}
