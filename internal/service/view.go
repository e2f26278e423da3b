package service

import (
	"courrier/backend/internal/domain"
	"courrier/backend/internal/storage"
)

// ViewService 从登记册按需派生过滤视图与聚合统计。
//
// 登记册规模有限，每次调用都线性重算，不做缓存。
type ViewService struct {
	repo storage.RegistryRepository
}

// NewViewService 创建视图业务服务。
func NewViewService(repo storage.RegistryRepository) *ViewService {
	return &ViewService{repo: repo}
}

// Filter 返回满足选项卡与关键词条件的信件序列，保持登记册顺序。
func (s *ViewService) Filter(tab domain.Tab, query string) []domain.MailRecord {
	return s.repo.FilterMailRecords(domain.FilterCriteria{
		Tab:   tab,
		Query: query,
	})
}

// Stats 返回全量登记册上的聚合统计。
func (s *ViewService) Stats() domain.MailStats {
	return s.repo.ComputeStats()
}
