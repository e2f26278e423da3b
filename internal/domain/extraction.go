package domain

// ExtractionResult 表示文档理解服务返回的结构化字段。
//
// 服务可能省略任意字段，空字符串即为缺省。
type ExtractionResult struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Reference string `json:"reference"`
	Date      string `json:"date"`
	IsUrgent  bool   `json:"isUrgent"`
	Summary   string `json:"summary"`
}
