package domain

import "strings"

// 支持的文档媒体类型。
const (
	MediaTypePDF         = "application/pdf"
	MediaTypeImagePrefix = "image/"
)

// DocumentPayload 表示编码后的扫描件载荷。
//
// DataURI 为自描述的 data:<mediaType>;base64,<bytes> 字符串，
// 可直接嵌入请求体或用于前端预览。
type DocumentPayload struct {
	DataURI   string `json:"dataUri"`   // base64 data URI
	MediaType string `json:"mediaType"` // 声明的媒体类型（image/* 或 application/pdf）
	Filename  string `json:"filename"`  // 原始文件显示名
	Size      int64  `json:"size"`      // 原始字节数
}

// IsPDF 判断载荷是否为 PDF 文档。
func (p *DocumentPayload) IsPDF() bool {
	return p != nil && p.MediaType == MediaTypePDF
}

// IsImage 判断载荷是否为图片。
func (p *DocumentPayload) IsImage() bool {
	return p != nil && strings.HasPrefix(p.MediaType, MediaTypeImagePrefix)
}
