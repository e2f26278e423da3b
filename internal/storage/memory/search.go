package memory

import (
	"strings"

	"courrier/backend/internal/domain"
)

// FilterMailRecords 按选项卡与关键词过滤信件（内存实现）。
//
// 输出保持登记册顺序（最新在前）；SYNC 选项卡恒为空。
func (s *Store) FilterMailRecords(criteria domain.FilterCriteria) []domain.MailRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if criteria.Tab == domain.TabSync {
		return []domain.MailRecord{}
	}

	out := make([]domain.MailRecord, 0, len(s.records))
	for _, record := range s.records {
		if matchesCriteria(record, criteria) {
			out = append(out, *record)
		}
	}
	return out
}

// matchesCriteria 检查记录是否同时满足选项卡与关键词条件。
func matchesCriteria(record *domain.MailRecord, criteria domain.FilterCriteria) bool {
	// 选项卡筛选（ALL 不限流向）
	switch criteria.Tab {
	case domain.TabIncoming:
		if record.Direction != domain.DirectionIncoming {
			return false
		}
	case domain.TabOutgoing:
		if record.Direction != domain.DirectionOutgoing {
			return false
		}
	}

	// 关键词搜索（主题、寄件人、收件人、编号），空关键词匹配所有
	if criteria.Query != "" {
		query := strings.ToLower(criteria.Query)
		if !strings.Contains(strings.ToLower(record.Subject), query) &&
			!strings.Contains(strings.ToLower(record.Sender), query) &&
			!strings.Contains(strings.ToLower(record.Recipient), query) &&
			!strings.Contains(strings.ToLower(record.Reference), query) {
			return false
		}
	}

	return true
}

// ComputeStats 在全量登记册上线性重算聚合统计。
func (s *Store) ComputeStats() domain.MailStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.MailStats
	for _, record := range s.records {
		if record.Direction == domain.DirectionIncoming {
			stats.IncomingCount++
		}
		if record.Direction == domain.DirectionOutgoing {
			stats.OutgoingCount++
		}
		if record.Priority == domain.PriorityUrgent {
			stats.UrgentCount++
		}
		if record.Status == domain.StatusPending {
			stats.PendingCount++
		}
		if record.Status == domain.StatusArchived {
			stats.ArchivedCount++
		}
	}
	return stats
}
