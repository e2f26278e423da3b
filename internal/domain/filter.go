package domain

import "errors"

// Tab 表示展示层的视图选项卡。
type Tab string

const (
	TabAll      Tab = "ALL"      // 不限流向
	TabIncoming Tab = "INCOMING" // 仅收件
	TabOutgoing Tab = "OUTGOING" // 仅寄件
	TabSync     Tab = "SYNC"     // 设备同步页，不展示任何信件
)

// ErrInvalidTab 表示未知的选项卡取值。
var ErrInvalidTab = errors.New("invalid tab")

// ParseTab 解析选项卡参数，空值视为 ALL。
func ParseTab(value string) (Tab, error) {
	switch Tab(value) {
	case "":
		return TabAll, nil
	case TabAll, TabIncoming, TabOutgoing, TabSync:
		return Tab(value), nil
	default:
		return "", ErrInvalidTab
	}
}

// FilterCriteria 信件过滤条件，两个条件为与关系。
type FilterCriteria struct {
	Tab   Tab    // 选项卡（流向约束）
	Query string // 不区分大小写的子串匹配，作用于主题、寄件人、收件人、编号
}
