package domain

// MailStats 登记册的聚合统计。
//
// 每次读取都在全量登记册上线性重算，不做缓存。
type MailStats struct {
	IncomingCount int `json:"incomingCount"` // 收件数
	OutgoingCount int `json:"outgoingCount"` // 寄件数
	UrgentCount   int `json:"urgentCount"`   // 紧急信件数
	PendingCount  int `json:"pendingCount"`  // 待处理信件数
	ArchivedCount int `json:"archivedCount"` // 已归档信件数
}
