package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fabra/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotificationAPI struct {
	mu          sync.Mutex
	list        []models.Notification
	listErr     error
	getCalls    int
	markedRead  []uint
	markReadErr error
	markedAll   int
}

func (f *fakeNotificationAPI) GetForEmployee(uint) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Notification, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeNotificationAPI) MarkRead(id, _ uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedRead = append(f.markedRead, id)
	return f.markReadErr
}

func (f *fakeNotificationAPI) MarkAllRead(uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedAll++
	return nil
}

func (f *fakeNotificationAPI) setErr(err error) {
	f.mu.Lock()
	f.listErr = err
	f.mu.Unlock()
}

func (f *fakeNotificationAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func rushRef(id uint) *uint { return &id }

func sampleNotifications() []models.Notification {
	return []models.Notification{
		{ID: 1, EmployeeID: 7, Message: "rush order opened", RushOrderID: rushRef(12)},
		{ID: 2, EmployeeID: 7, Message: "task assigned"},
		{ID: 3, EmployeeID: 7, Message: "part reported", Read: true},
	}
}

func TestFeedRefreshCountsUnread(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications()}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())

	feed.Refresh(context.Background())

	items, unread, syncedAt := feed.Snapshot()
	assert.Len(t, items, 3)
	assert.Equal(t, 2, unread)
	assert.False(t, syncedAt.IsZero())
}

func TestFeedKeepsStaleSnapshotOnRefreshError(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications()}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())

	feed.Refresh(context.Background())
	_, _, firstSync := feed.Snapshot()

	api.setErr(errors.New("store down"))
	feed.Refresh(context.Background())

	items, unread, syncedAt := feed.Snapshot()
	assert.Len(t, items, 3)
	assert.Equal(t, 2, unread)
	assert.Equal(t, firstSync, syncedAt)
}

func TestFeedOpenMarksReadAndNavigates(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications()}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())
	var navigated []uint
	feed.Navigate = func(id uint) { navigated = append(navigated, id) }

	feed.Refresh(context.Background())
	feed.Open(1)

	items, unread, _ := feed.Snapshot()
	assert.True(t, items[0].Read)
	assert.Equal(t, 1, unread)
	assert.Equal(t, []uint{1}, api.markedRead)
	assert.Equal(t, []uint{12}, navigated)
}

func TestFeedOpenKeepsLocalPatchWhenWriteFails(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications(), markReadErr: errors.New("timeout")}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())

	feed.Refresh(context.Background())
	feed.Open(2)

	// The optimistic flip stays; reconciliation is the next poll's job.
	items, unread, _ := feed.Snapshot()
	assert.True(t, items[1].Read)
	assert.Equal(t, 1, unread)
}

func TestFeedOpenAlreadyReadDoesNotGoNegative(t *testing.T) {
	api := &fakeNotificationAPI{list: []models.Notification{
		{ID: 3, EmployeeID: 7, Message: "done", Read: true},
	}}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())

	feed.Refresh(context.Background())
	feed.Open(3)
	feed.Open(3)

	_, unread, _ := feed.Snapshot()
	assert.Equal(t, 0, unread)
}

func TestFeedMarkAllReadZeroesBadge(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications()}
	feed := NewNotificationFeed(api, 7, time.Minute, zap.NewNop())

	feed.Refresh(context.Background())
	feed.MarkAllRead()

	items, unread, _ := feed.Snapshot()
	for _, n := range items {
		assert.True(t, n.Read)
	}
	assert.Equal(t, 0, unread)
	assert.Equal(t, 1, api.markedAll)
}

func TestFeedStopEndsPolling(t *testing.T) {
	api := &fakeNotificationAPI{list: sampleNotifications()}
	feed := NewNotificationFeed(api, 7, 5*time.Millisecond, zap.NewNop())

	feed.Start(context.Background())
	require.Eventually(t, func() bool { return api.calls() >= 2 }, time.Second, time.Millisecond)
	feed.Stop()

	settled := api.calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, api.calls())
}
