package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/chatbot"
)

// Frame types of the chat socket.
const (
	TypeMessage    = "message"
	TypeReset      = "reset"
	TypeTranscript = "transcript"
	TypeError      = "error"
)

// ChatInput is a frame sent by the chat window.
type ChatInput struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type chatSession struct {
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

// ServeChat runs one chat window over a websocket. The conversation lives
// exactly as long as the socket: closing it cancels any reply still being
// typed. ServeChat returns when the socket is closed.
func ServeChat(upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, delay time.Duration, log *zap.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Chat websocket upgrade failed", zap.Error(err))
		return
	}

	s := &chatSession{conn: conn, send: make(chan []byte, sendBuffer), log: log}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conv := chatbot.NewConversation(ctx,
		chatbot.WithDelay(delay),
		chatbot.WithSink(func(m chatbot.Message) {
			s.push(Message{Type: TypeMessage, Data: m})
		}),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeLoop(conn, s.send)
	}()

	s.push(Message{Type: TypeTranscript, Data: conv.Messages()})
	s.readLoop(conv)

	// No sink call can happen after Close returns, so send can be closed.
	conv.Close()
	close(s.send)
	<-done
}

func (s *chatSession) readLoop(conv *chatbot.Conversation) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in ChatInput
		if err := s.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("Chat socket closed", zap.Error(err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		switch in.Type {
		case TypeMessage:
			msg, err := conv.Send(in.Text)
			if err != nil {
				continue
			}
			s.push(Message{Type: TypeMessage, Data: msg})
		case TypeReset:
			s.push(Message{Type: TypeTranscript, Data: conv.Reset()})
		default:
			s.push(Message{Type: TypeError, Data: "unknown frame type " + in.Type})
		}
	}
}

func (s *chatSession) push(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("Marshalling chat frame", zap.Error(err))
		return
	}
	select {
	case s.send <- b:
	default:
		s.log.Warn("Chat send buffer full, dropping frame", zap.String("type", msg.Type))
	}
}
