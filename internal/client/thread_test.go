package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fabra/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeThreadAPI struct {
	mu          sync.Mutex
	messages    []repository.ThreadMessage
	threadCalls int
	appendErr   error
	appended    []string
	readCalls   int
}

func (f *fakeThreadAPI) Thread(uint) ([]repository.ThreadMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threadCalls++
	out := make([]repository.ThreadMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeThreadAPI) Append(rushOrderID, employeeID uint, text string) (*repository.ThreadMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.appended = append(f.appended, text)
	m := repository.ThreadMessage{
		ID:          uint(len(f.messages) + 1),
		RushOrderID: rushOrderID,
		EmployeeID:  employeeID,
		Message:     text,
	}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeThreadAPI) MarkThreadRead(uint, uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readCalls++
	return nil
}

func (f *fakeThreadAPI) stats() (threadCalls, readCalls int, appended []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.threadCalls, f.readCalls, append([]string(nil), f.appended...)
}

func TestThreadRefreshMarksRead(t *testing.T) {
	api := &fakeThreadAPI{messages: []repository.ThreadMessage{{ID: 1, Message: "hi"}}}
	th := NewChatThread(api, 12, 7, time.Minute, zap.NewNop())

	th.Refresh(context.Background())

	_, readCalls, _ := api.stats()
	assert.Equal(t, 1, readCalls)
	assert.Len(t, th.Messages(), 1)
}

func TestThreadOnChangeFiresOnNewMessages(t *testing.T) {
	api := &fakeThreadAPI{messages: []repository.ThreadMessage{{ID: 1, Message: "hi"}}}
	th := NewChatThread(api, 12, 7, time.Minute, zap.NewNop())
	var counts []int
	th.OnChange = func(n int) { counts = append(counts, n) }

	th.Refresh(context.Background())
	th.Refresh(context.Background()) // same size, no event

	api.mu.Lock()
	api.messages = append(api.messages, repository.ThreadMessage{ID: 2, Message: "ping"})
	api.mu.Unlock()
	th.Refresh(context.Background())

	assert.Equal(t, []int{1, 2}, counts)
}

func TestSendRejectsWhitespaceBeforeStore(t *testing.T) {
	api := &fakeThreadAPI{}
	th := NewChatThread(api, 12, 7, time.Minute, zap.NewNop())

	for _, input := range []string{"", "   ", "\t\n"} {
		th.SetInput(input)
		err := th.Send(context.Background())
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	_, _, appended := api.stats()
	assert.Empty(t, appended)
}

func TestSendClearsInputAndRefetchesImmediately(t *testing.T) {
	api := &fakeThreadAPI{}
	th := NewChatThread(api, 12, 7, time.Minute, zap.NewNop())

	th.SetInput("  press 2 is down  ")
	before, _, _ := api.stats()
	require.NoError(t, th.Send(context.Background()))

	assert.Equal(t, "", th.Input())
	threadCalls, _, appended := api.stats()
	assert.Equal(t, []string{"press 2 is down"}, appended)
	assert.Equal(t, before+1, threadCalls)
	require.Len(t, th.Messages(), 1)
	assert.Equal(t, "press 2 is down", th.Messages()[0].Message)
}

func TestSendFailurePreservesInput(t *testing.T) {
	api := &fakeThreadAPI{appendErr: errors.New("store down")}
	th := NewChatThread(api, 12, 7, time.Minute, zap.NewNop())

	th.SetInput("please retry me")
	err := th.Send(context.Background())

	require.Error(t, err)
	assert.Equal(t, "please retry me", th.Input())
	assert.True(t, th.CanSend())
}

func TestCanSendGatesOnInput(t *testing.T) {
	th := NewChatThread(&fakeThreadAPI{}, 12, 7, time.Minute, zap.NewNop())

	assert.False(t, th.CanSend())
	th.SetInput("   ")
	assert.False(t, th.CanSend())
	th.SetInput("ok")
	assert.True(t, th.CanSend())
}

func TestThreadStopEndsPolling(t *testing.T) {
	api := &fakeThreadAPI{}
	th := NewChatThread(api, 12, 7, 5*time.Millisecond, zap.NewNop())

	th.Start(context.Background())
	require.Eventually(t, func() bool {
		calls, _, _ := api.stats()
		return calls >= 2
	}, time.Second, time.Millisecond)
	th.Stop()

	settled, _, _ := api.stats()
	time.Sleep(30 * time.Millisecond)
	calls, _, _ := api.stats()
	assert.Equal(t, settled, calls)
}
