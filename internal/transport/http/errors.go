package httptransport

import (
	"courrier/backend/internal/document"
	"courrier/backend/internal/service"
	"courrier/backend/internal/storage/memory"
)

// 错误消息映射表（业务错误 -> 中文消息）
var errorMessages = map[error]string{
	// 编码错误
	document.ErrEmptyDocument:        "文档内容为空",
	document.ErrUnreadableDocument:   "文档无法读取",
	document.ErrUnsupportedMediaType: "仅支持图片与 PDF 文档",

	// 录入错误
	service.ErrIntakeBusy: "已有扫描任务进行中，请稍后再试",

	// 提交校验错误
	service.ErrSubjectRequired: "信件主题不能为空",
	service.ErrSenderRequired:  "寄件人不能为空",

	// 登记册错误
	memory.ErrMailRecordNotFound: "信件不存在",
}

// GetErrorMessage 获取错误的中文消息
func GetErrorMessage(err error) string {
	if msg, ok := errorMessages[err]; ok {
		return msg
	}
	return err.Error()
}

// 通用错误消息
const (
	MsgInvalidRequest  = "请求参数格式错误"
	MsgMissingDocument = "请求中缺少文档文件"
	MsgInvalidTab      = "无效的视图选项卡"
	MsgScanFailed      = "扫描文档失败"
	MsgCommitFailed    = "提交信件失败"
	MsgMailNotFound    = "信件不存在"
	MsgInternalError   = "服务器内部错误，请稍后重试"
)
