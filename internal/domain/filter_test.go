package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTab(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tab
		wantErr bool
	}{
		{"空值视为ALL", "", TabAll, false},
		{"ALL", "ALL", TabAll, false},
		{"INCOMING", "INCOMING", TabIncoming, false},
		{"OUTGOING", "OUTGOING", TabOutgoing, false},
		{"SYNC", "SYNC", TabSync, false},
		{"小写不接受", "incoming", "", true},
		{"未知取值", "TRASH", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := ParseTab(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTab)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, tab)
		})
	}
}
