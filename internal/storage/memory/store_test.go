package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courrier/backend/internal/domain"
)

func newTestRecord(id string) *domain.MailRecord {
	return &domain.MailRecord{
		ID:        id,
		Reference: "REF-" + id,
		Direction: domain.DirectionIncoming,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityNormal,
		Sender:    "La Poste",
		Recipient: "Jean Dupont",
		Subject:   "Courrier " + id,
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_InsertMailRecord(t *testing.T) {
	store := NewStore()

	err := store.InsertMailRecord(newTestRecord("mail-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())

	// Test duplicate ID rejection
	err = store.InsertMailRecord(newTestRecord("mail-1"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, store.Count())
}

func TestMemoryStore_HeadInsertOrder(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-1")))
	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-2")))
	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-3")))

	records := store.ListMailRecords()
	require.Len(t, records, 3)
	assert.Equal(t, "mail-3", records[0].ID)
	assert.Equal(t, "mail-2", records[1].ID)
	assert.Equal(t, "mail-1", records[2].ID)
}

func TestMemoryStore_GetMailRecord(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-1")))

	record, err := store.GetMailRecord("mail-1")
	require.NoError(t, err)
	assert.Equal(t, "Courrier mail-1", record.Subject)

	// 返回的是副本，修改不影响登记册
	record.Subject = "modified"
	again, err := store.GetMailRecord("mail-1")
	require.NoError(t, err)
	assert.Equal(t, "Courrier mail-1", again.Subject)

	_, err = store.GetMailRecord("missing")
	assert.ErrorIs(t, err, ErrMailRecordNotFound)
}

func TestMemoryStore_ListSnapshot(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-1")))

	snapshot := store.ListMailRecords()
	require.Len(t, snapshot, 1)

	// 快照不随后续插入变化
	require.NoError(t, store.InsertMailRecord(newTestRecord("mail-2")))
	assert.Len(t, snapshot, 1)
	assert.Len(t, store.ListMailRecords(), 2)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.InsertMailRecord(newTestRecord(fmt.Sprintf("mail-%d", n)))
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.ListMailRecords()
			_ = store.ComputeStats()
			store.Count()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
}

func TestMemoryStore_HealthAndClose(t *testing.T) {
	store := NewStore()

	assert.NoError(t, store.Health())
	assert.NoError(t, store.Close())
}

func TestMemoryStore_ComputeStats(t *testing.T) {
	store := NewStore()

	urgent := newTestRecord("mail-1")
	urgent.Priority = domain.PriorityUrgent

	outgoing := newTestRecord("mail-2")
	outgoing.Direction = domain.DirectionOutgoing
	outgoing.Status = domain.StatusSent

	archived := newTestRecord("mail-3")
	archived.Status = domain.StatusArchived

	require.NoError(t, store.InsertMailRecord(urgent))
	require.NoError(t, store.InsertMailRecord(outgoing))
	require.NoError(t, store.InsertMailRecord(archived))

	stats := store.ComputeStats()
	assert.Equal(t, 2, stats.IncomingCount)
	assert.Equal(t, 1, stats.OutgoingCount)
	assert.Equal(t, 1, stats.UrgentCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 1, stats.ArchivedCount)
}
