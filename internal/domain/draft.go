package domain

// DraftRecord 表示录入流程中尚未提交的信件草稿。
//
// 所有字段均为可选；草稿由录入流水线独占，直到被提交或丢弃。
type DraftRecord struct {
	Reference      string           `json:"reference"`
	Direction      Direction        `json:"direction"`
	Status         Status           `json:"status"`
	Priority       Priority         `json:"priority"`
	Sender         string           `json:"sender"`
	Recipient      string           `json:"recipient"`
	Subject        string           `json:"subject"`
	Date           string           `json:"date"`
	ContentSummary string           `json:"contentSummary,omitempty"`
	TrackingNumber string           `json:"trackingNumber,omitempty"`
	Attachment     *DocumentPayload `json:"attachment,omitempty"`
}
