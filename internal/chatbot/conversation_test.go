package chatbot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDelay = 20 * time.Millisecond

func TestConversation_StartsWithGreeting(t *testing.T) {
	c := NewConversation(context.Background())
	defer c.Close()

	assert.Equal(t, []Message{{Role: RoleBot, Text: Greeting}}, c.Messages())
}

func TestConversation_ReplyArrivesAfterDelay(t *testing.T) {
	var (
		mu       sync.Mutex
		received []Message
	)
	c := NewConversation(context.Background(), WithDelay(testDelay), WithSink(func(m Message) {
		mu.Lock()
		received = append(received, m)
		mu.Unlock()
	}))
	defer c.Close()

	msg, err := c.Send("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, Message{Role: RoleUser, Text: "hello"}, msg)
	assert.Len(t, c.Messages(), 2, "user message is appended immediately")

	require.Eventually(t, func() bool { return len(c.Messages()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, Message{Role: RoleBot, Text: Reply("hello")}, c.Messages()[2])

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Message{{Role: RoleBot, Text: Reply("hello")}}, received)
}

func TestConversation_EmptyInputIgnored(t *testing.T) {
	c := NewConversation(context.Background(), WithDelay(testDelay))
	defer c.Close()

	_, err := c.Send("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, c.Messages(), 1)
}

func TestConversation_ResetDropsPendingReply(t *testing.T) {
	c := NewConversation(context.Background(), WithDelay(testDelay))
	defer c.Close()

	_, err := c.Send("I feel so stressed")
	require.NoError(t, err)

	got := c.Reset()
	assert.Equal(t, []Message{{Role: RoleBot, Text: FreshStart}}, got)

	time.Sleep(5 * testDelay)
	assert.Equal(t, []Message{{Role: RoleBot, Text: FreshStart}}, c.Messages())
}

func TestConversation_RepliesAfterResetStillArrive(t *testing.T) {
	c := NewConversation(context.Background(), WithDelay(testDelay))
	defer c.Close()

	_, err := c.Send("qwerty")
	require.NoError(t, err)
	c.Reset()
	_, err = c.Send("hello")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(c.Messages()) == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDelay)
	assert.Equal(t, []Message{
		{Role: RoleBot, Text: FreshStart},
		{Role: RoleUser, Text: "hello"},
		{Role: RoleBot, Text: Reply("hello")},
	}, c.Messages())
}

func TestConversation_CloseCancelsPending(t *testing.T) {
	c := NewConversation(context.Background(), WithDelay(time.Hour))

	for i := 0; i < 5; i++ {
		_, err := c.Send("hello")
		require.NoError(t, err)
	}
	c.Close()

	_, err := c.Send("hello")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Len(t, c.Messages(), 6)
}

func TestConversation_ParentContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewConversation(ctx, WithDelay(time.Hour))

	_, err := c.Send("hello")
	require.NoError(t, err)
	cancel()
	c.Close()

	assert.Len(t, c.Messages(), 2)
}

func TestConversation_ResetWaitsForReplyInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu        sync.Mutex
		delivered []Message
	)
	c := NewConversation(context.Background(), WithDelay(time.Millisecond), WithSink(func(m Message) {
		close(entered)
		<-release
		mu.Lock()
		delivered = append(delivered, m)
		mu.Unlock()
	}))
	defer c.Close()

	_, err := c.Send("hello")
	require.NoError(t, err)
	<-entered

	resetDone := make(chan []Message)
	go func() { resetDone <- c.Reset() }()

	select {
	case <-resetDone:
		t.Fatal("reset returned while a reply was still being delivered")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	got := <-resetDone
	assert.Equal(t, []Message{{Role: RoleBot, Text: FreshStart}}, got)
	assert.Equal(t, got, c.Messages())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Message{{Role: RoleBot, Text: Reply("hello")}}, delivered,
		"the reply reaches the sink before the reset, never after it")
}
