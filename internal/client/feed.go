// Package client holds the poll-driven view controllers used by terminals on
// the shop floor: a notification feed and a rush-order chat thread. Both keep
// a disposable local snapshot of server state, refreshed on a fixed interval;
// the store stays authoritative. Poll overlap is resolved last-response-wins,
// and a failed background refresh leaves the previous snapshot in place
// (stale-but-available) rather than blanking the view.
package client

import (
	"context"
	"sync"
	"time"

	"fabra/internal/models"

	"go.uber.org/zap"
)

// NotificationAPI is the slice of the notification service the feed needs.
type NotificationAPI interface {
	GetForEmployee(employeeID uint) ([]models.Notification, error)
	MarkRead(id, employeeID uint) error
	MarkAllRead(employeeID uint) error
}

// NotificationFeed mirrors an employee's notification list. Refreshes on
// Start and every interval tick; Stop tears the poll loop down. Mark-read
// actions patch the local snapshot first and let the next poll reconcile,
// so a failed write is logged, never rolled back.
type NotificationFeed struct {
	api        NotificationAPI
	employeeID uint
	interval   time.Duration
	log        *zap.Logger

	// Navigate, when set, is invoked with the rush-order ID after opening a
	// notification tied to one.
	Navigate func(rushOrderID uint)

	mu           sync.Mutex
	items        []models.Notification
	unread       int
	lastSyncedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewNotificationFeed(api NotificationAPI, employeeID uint, interval time.Duration, log *zap.Logger) *NotificationFeed {
	return &NotificationFeed{
		api:        api,
		employeeID: employeeID,
		interval:   interval,
		log:        log,
	}
}

// Start fetches immediately, then polls until ctx is cancelled or Stop is called.
func (f *NotificationFeed) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)
	f.done = make(chan struct{})
	f.Refresh(ctx)
	go func() {
		defer close(f.done)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.Refresh(ctx)
			}
		}
	}()
}

// Stop ends polling and waits for the loop to exit. In-flight refreshes
// resolve harmlessly: their results are dropped at the ctx guard.
func (f *NotificationFeed) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
	if f.done != nil {
		<-f.done
	}
}

// Refresh replaces the snapshot from the store. On failure the previous
// snapshot stays; background staleness is not worth interrupting anyone over.
func (f *NotificationFeed) Refresh(ctx context.Context) {
	list, err := f.api.GetForEmployee(f.employeeID)
	if err != nil {
		f.log.Debug("notification refresh failed, keeping stale snapshot",
			zap.Uint("employee_id", f.employeeID), zap.Error(err))
		return
	}
	if ctx != nil && ctx.Err() != nil {
		return // resolved after Stop; discard
	}
	unread := 0
	for i := range list {
		if !list[i].Read {
			unread++
		}
	}
	f.mu.Lock()
	f.items = list
	f.unread = unread
	f.lastSyncedAt = time.Now()
	f.mu.Unlock()
}

// Open marks a notification read (optimistically, local first) and triggers
// navigation when it points at a rush order.
func (f *NotificationFeed) Open(id uint) {
	var rushOrderID *uint
	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if !f.items[i].Read {
			f.items[i].Read = true
			if f.unread > 0 {
				f.unread--
			}
		}
		rushOrderID = f.items[i].RushOrderID
		break
	}
	f.mu.Unlock()
	if err := f.api.MarkRead(id, f.employeeID); err != nil {
		// No rollback: the next poll carries the true state.
		f.log.Warn("mark read failed", zap.Uint("notification_id", id), zap.Error(err))
	}
	if rushOrderID != nil && f.Navigate != nil {
		f.Navigate(*rushOrderID)
	}
}

// MarkAllRead flips the whole snapshot and zeroes the badge before the write.
func (f *NotificationFeed) MarkAllRead() {
	f.mu.Lock()
	for i := range f.items {
		f.items[i].Read = true
	}
	f.unread = 0
	f.mu.Unlock()
	if err := f.api.MarkAllRead(f.employeeID); err != nil {
		f.log.Warn("mark all read failed", zap.Uint("employee_id", f.employeeID), zap.Error(err))
	}
}

// Snapshot returns the current list, unread count and last successful sync time.
func (f *NotificationFeed) Snapshot() ([]models.Notification, int, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.Notification, len(f.items))
	copy(items, f.items)
	return items, f.unread, f.lastSyncedAt
}
