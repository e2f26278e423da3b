package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courrier/backend/internal/domain"
	"courrier/backend/internal/storage/memory"
)

// seedViewStore 构造一个含三封信件的登记册（最新在前）。
func seedViewStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	records := []*domain.MailRecord{
		{
			ID:        "mail-1",
			Reference: "2024-FACT-001",
			Direction: domain.DirectionIncoming,
			Status:    domain.StatusPending,
			Priority:  domain.PriorityUrgent,
			Sender:    "EDF France",
			Recipient: "Jean Dupont",
			Subject:   "Facture d'électricité",
			CreatedAt: time.Now(),
		},
		{
			ID:        "mail-2",
			Reference: "2024-ENV-014",
			Direction: domain.DirectionOutgoing,
			Status:    domain.StatusSent,
			Priority:  domain.PriorityNormal,
			Sender:    "Jean Dupont",
			Recipient: "Mairie de Lyon",
			Subject:   "Demande d'acte de naissance",
			CreatedAt: time.Now(),
		},
		{
			ID:        "mail-3",
			Reference: "2024-ARC-007",
			Direction: domain.DirectionIncoming,
			Status:    domain.StatusArchived,
			Priority:  domain.PriorityNormal,
			Sender:    "CPAM",
			Recipient: "Jean Dupont",
			Subject:   "Attestation de droits",
			CreatedAt: time.Now(),
		},
	}

	// 倒序插入，使 mail-1 位于头部
	for i := len(records) - 1; i >= 0; i-- {
		require.NoError(t, store.InsertMailRecord(records[i]))
	}
	return store
}

func TestViewService_Filter(t *testing.T) {
	store := seedViewStore(t)
	svc := NewViewService(store)

	t.Run("ALL返回全部信件并保持顺序", func(t *testing.T) {
		records := svc.Filter(domain.TabAll, "")

		require.Len(t, records, 3)
		assert.Equal(t, "mail-1", records[0].ID)
		assert.Equal(t, "mail-2", records[1].ID)
		assert.Equal(t, "mail-3", records[2].ID)
	})

	t.Run("INCOMING只返回收件", func(t *testing.T) {
		records := svc.Filter(domain.TabIncoming, "")

		require.Len(t, records, 2)
		for _, r := range records {
			assert.Equal(t, domain.DirectionIncoming, r.Direction)
		}
	})

	t.Run("OUTGOING只返回寄件", func(t *testing.T) {
		records := svc.Filter(domain.TabOutgoing, "")

		require.Len(t, records, 1)
		assert.Equal(t, "mail-2", records[0].ID)
	})

	t.Run("SYNC返回空列表", func(t *testing.T) {
		records := svc.Filter(domain.TabSync, "")

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("关键词匹配寄件人不区分大小写", func(t *testing.T) {
		records := svc.Filter(domain.TabAll, "edf")

		require.Len(t, records, 1)
		assert.Equal(t, "mail-1", records[0].ID)
	})

	t.Run("关键词匹配编号", func(t *testing.T) {
		records := svc.Filter(domain.TabAll, "2024-env")

		require.Len(t, records, 1)
		assert.Equal(t, "mail-2", records[0].ID)
	})

	t.Run("关键词匹配收件人", func(t *testing.T) {
		records := svc.Filter(domain.TabAll, "mairie")

		require.Len(t, records, 1)
		assert.Equal(t, "mail-2", records[0].ID)
	})

	t.Run("选项卡与关键词叠加过滤", func(t *testing.T) {
		// "Jean Dupont" 同时出现在收件人与寄件人中
		records := svc.Filter(domain.TabIncoming, "jean dupont")

		require.Len(t, records, 2)

		records = svc.Filter(domain.TabOutgoing, "edf")
		assert.Empty(t, records)
	})

	t.Run("无匹配返回空列表", func(t *testing.T) {
		records := svc.Filter(domain.TabAll, "introuvable")

		assert.Empty(t, records)
	})
}

func TestViewService_Stats(t *testing.T) {
	t.Run("统计各维度计数", func(t *testing.T) {
		store := seedViewStore(t)
		svc := NewViewService(store)

		stats := svc.Stats()

		assert.Equal(t, 2, stats.IncomingCount)
		assert.Equal(t, 1, stats.OutgoingCount)
		assert.Equal(t, 1, stats.UrgentCount)
		assert.Equal(t, 1, stats.PendingCount)
		assert.Equal(t, 1, stats.ArchivedCount)
	})

	t.Run("空登记册统计全为零", func(t *testing.T) {
		svc := NewViewService(memory.NewStore())

		stats := svc.Stats()

		assert.Zero(t, stats.IncomingCount)
		assert.Zero(t, stats.OutgoingCount)
		assert.Zero(t, stats.UrgentCount)
		assert.Zero(t, stats.PendingCount)
		assert.Zero(t, stats.ArchivedCount)
	})

	t.Run("统计为只读操作可重复调用", func(t *testing.T) {
		store := seedViewStore(t)
		svc := NewViewService(store)

		first := svc.Stats()
		second := svc.Stats()

		assert.Equal(t, first, second)
		assert.Equal(t, 3, store.Count())
	})
}
