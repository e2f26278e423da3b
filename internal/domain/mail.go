package domain

import "time"

// Direction 表示信件的流向。
type Direction string

const (
	DirectionIncoming Direction = "INCOMING" // 收到的信件
	DirectionOutgoing Direction = "OUTGOING" // 寄出的信件
)

// Status 表示信件的处理状态。
//
// PDF 附件的信件在提交时会被强制置为 ARCHIVED（硬性业务规则）。
// RECEIVED/SENT 仅由示例数据产生，提交流程不会生成这两个状态。
type Status string

const (
	StatusPending  Status = "PENDING"  // 待处理（默认）
	StatusReceived Status = "RECEIVED" // 已确认收到
	StatusSent     Status = "SENT"     // 已寄出
	StatusArchived Status = "ARCHIVED" // 已归档（PDF 文档强制）
)

// Priority 表示信件的优先级。
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityUrgent Priority = "URGENT"
)

// DisplayDateLayout 信件日期的展示格式（DD/MM/YYYY）。
const DisplayDateLayout = "02/01/2006"

// MailRecord 表示登记册中一封已提交的实体信件。
//
// 提交后除显式编辑外不可变更；ID 在登记册生命周期内唯一且不复用。
type MailRecord struct {
	ID             string           `json:"id"`                       // 唯一标识，提交时分配
	Reference      string           `json:"reference"`                // 面向用户的追踪编号，不保证全局唯一
	Direction      Direction        `json:"direction"`                // 流向，创建后固定
	Status         Status           `json:"status"`                   // 处理状态
	Priority       Priority         `json:"priority"`                 // 优先级
	Sender         string           `json:"sender"`                   // 寄件人（提交时必填）
	Recipient      string           `json:"recipient"`                // 收件人
	Subject        string           `json:"subject"`                  // 信件主题（提交时必填）
	Date           string           `json:"date"`                     // 文档上的原始日期（非入册时间）
	ContentSummary string           `json:"contentSummary,omitempty"` // AI 生成的内容摘要
	TrackingNumber string           `json:"trackingNumber,omitempty"` // 快递追踪号（按惯例仅寄出信件使用）
	Attachment     *DocumentPayload `json:"attachment,omitempty"`     // 扫描件（图片或 PDF），提交后归该记录独占
	CreatedAt      time.Time        `json:"createdAt"`                // 入册时间
}
