package chatbot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

const (
	Greeting   = "Hi! I'm Zevi 🌿💜 Your ZEVINA wellness companion. How are you feeling today?"
	FreshStart = "Fresh start! 🌿 I'm Zevi. How can I support you today?"

	DefaultDelay = 600 * time.Millisecond
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrClosed       = errors.New("conversation closed")
)

type Role string

const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is one chat window's transcript.
//
// Bot replies are scheduled tasks bound to the current generation of the
// transcript. Reset and Close cancel them, so a reply scheduled before a
// reset never lands in the new transcript.
type Conversation struct {
	delay     time.Duration
	onMessage func(Message)

	parent context.Context
	wg     sync.WaitGroup

	// delivery is held across a reply's append and its sink call, and by
	// Reset, so a reset never lands between the two.
	delivery sync.Mutex

	mu         sync.Mutex
	messages   []Message
	generation uint64
	cancel     context.CancelFunc
	ctx        context.Context
	closed     bool
}

type Option func(*Conversation)

// WithDelay sets the typing delay before a bot reply is appended.
func WithDelay(d time.Duration) Option {
	return func(c *Conversation) { c.delay = d }
}

// WithSink registers fn to receive every delivered bot reply.
// fn must not block for long and must not call Reset.
func WithSink(fn func(Message)) Option {
	return func(c *Conversation) { c.onMessage = fn }
}

// NewConversation starts a transcript holding the greeting. Pending replies
// are cancelled when ctx is done.
func NewConversation(ctx context.Context, opts ...Option) *Conversation {
	c := &Conversation{
		delay:    DefaultDelay,
		parent:   ctx,
		messages: []Message{{Role: RoleBot, Text: Greeting}},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	return c
}

// Send appends the trimmed user text right away and schedules the reply.
func (c *Conversation) Send(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Message{}, ErrClosed
	}

	msg := Message{Role: RoleUser, Text: text}
	c.messages = append(c.messages, msg)
	c.schedule(c.ctx, c.generation, Reply(text))
	return msg, nil
}

// Reset cancels pending replies and restores a single greeting.
func (c *Conversation) Reset() []Message {
	c.delivery.Lock()
	defer c.delivery.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.snapshot()
	}

	c.cancel()
	c.ctx, c.cancel = context.WithCancel(c.parent)
	c.generation++
	c.messages = []Message{{Role: RoleBot, Text: FreshStart}}
	return c.snapshot()
}

// Close cancels every pending reply and waits for the scheduled tasks to exit.
func (c *Conversation) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Conversation) snapshot() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// schedule must be called with c.mu held.
func (c *Conversation) schedule(ctx context.Context, gen uint64, reply string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
			c.deliver(gen, Message{Role: RoleBot, Text: reply})
		}
	}()
}

func (c *Conversation) deliver(gen uint64, msg Message) {
	c.delivery.Lock()
	defer c.delivery.Unlock()

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, msg)
	sink := c.onMessage
	c.mu.Unlock()

	if sink != nil {
		sink(msg)
	}
}
