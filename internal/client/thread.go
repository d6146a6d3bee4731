package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fabra/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("message text required")
	ErrSendInFlight = errors.New("send already in flight")
)

// ThreadAPI is the slice of the message service the chat view needs.
type ThreadAPI interface {
	Thread(rushOrderID uint) ([]repository.ThreadMessage, error)
	Append(rushOrderID, employeeID uint, text string) (*repository.ThreadMessage, error)
	MarkThreadRead(rushOrderID, employeeID uint) error
}

// ChatThread mirrors one rush order's discussion for one employee. It polls
// while mounted, marks the thread read on every successful refresh (viewing
// is reading), and re-fetches immediately after a successful send so the
// sender sees their own message without waiting for the next tick.
type ChatThread struct {
	api         ThreadAPI
	rushOrderID uint
	employeeID  uint
	interval    time.Duration
	log         *zap.Logger

	// OnChange fires when the message count changes; the UI uses it to keep
	// the view scrolled to the latest message.
	OnChange func(count int)

	mu       sync.Mutex
	messages []repository.ThreadMessage
	input    string
	sending  bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewChatThread(api ThreadAPI, rushOrderID, employeeID uint, interval time.Duration, log *zap.Logger) *ChatThread {
	return &ChatThread{
		api:         api,
		rushOrderID: rushOrderID,
		employeeID:  employeeID,
		interval:    interval,
		log:         log,
	}
}

func (t *ChatThread) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.Refresh(ctx)
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Refresh(ctx)
			}
		}
	}()
}

func (t *ChatThread) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	if t.done != nil {
		<-t.done
	}
}

// Refresh replaces the local thread; a failed poll keeps the stale copy.
func (t *ChatThread) Refresh(ctx context.Context) {
	list, err := t.api.Thread(t.rushOrderID)
	if err != nil {
		t.log.Debug("thread refresh failed, keeping stale snapshot",
			zap.Uint("rush_order_id", t.rushOrderID), zap.Error(err))
		return
	}
	if ctx != nil && ctx.Err() != nil {
		return
	}
	t.mu.Lock()
	changed := len(list) != len(t.messages)
	t.messages = list
	t.mu.Unlock()
	if err := t.api.MarkThreadRead(t.rushOrderID, t.employeeID); err != nil {
		t.log.Warn("mark thread read failed",
			zap.Uint("rush_order_id", t.rushOrderID), zap.Error(err))
	}
	if changed && t.OnChange != nil {
		t.OnChange(len(list))
	}
}

func (t *ChatThread) SetInput(s string) {
	t.mu.Lock()
	t.input = s
	t.mu.Unlock()
}

func (t *ChatThread) Input() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

// CanSend reports whether the send control should be enabled.
func (t *ChatThread) CanSend() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.sending && strings.TrimSpace(t.input) != ""
}

// Send validates and posts the current input. Empty or whitespace-only text
// is rejected here and never reaches the store. On success the input clears
// and the thread re-fetches immediately; on failure the input stays so the
// employee can retry.
func (t *ChatThread) Send(ctx context.Context) error {
	t.mu.Lock()
	if t.sending {
		t.mu.Unlock()
		return ErrSendInFlight
	}
	text := strings.TrimSpace(t.input)
	if text == "" {
		t.mu.Unlock()
		return ErrEmptyMessage
	}
	t.sending = true
	t.mu.Unlock()

	_, err := t.api.Append(t.rushOrderID, t.employeeID, text)

	t.mu.Lock()
	t.sending = false
	if err == nil {
		t.input = ""
	}
	t.mu.Unlock()

	if err != nil {
		t.log.Warn("send failed, input preserved",
			zap.Uint("rush_order_id", t.rushOrderID), zap.Error(err))
		return err
	}
	t.Refresh(ctx)
	return nil
}

func (t *ChatThread) Messages() []repository.ThreadMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]repository.ThreadMessage, len(t.messages))
	copy(out, t.messages)
	return out
}
