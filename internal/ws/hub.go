// Package ws carries live updates to the browser: forum events fanned out
// to every open tab of a client, and the chatbot window.
package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Message is the JSON frame the frontend expects.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type envelope struct {
	namespace string
	payload   []byte
}

type countRequest struct {
	namespace string
	resp      chan int
}

// Hub keeps the open sockets of every client namespace and broadcasts to them.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	countReq   chan countRequest
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		countReq:   make(chan countRequest),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.clients {
				for c := range room {
					close(c.send)
				}
			}
			h.clients = nil
			return

		case c := <-h.register:
			room, ok := h.clients[c.namespace]
			if !ok {
				room = make(map[*Client]bool)
				h.clients[c.namespace] = room
			}
			room[c] = true

		case c := <-h.unregister:
			h.remove(c)

		case e := <-h.broadcast:
			for c := range h.clients[e.namespace] {
				select {
				case c.send <- e.payload:
				default:
					h.log.Warn("Dropping slow websocket client", zap.String("namespace", c.namespace))
					h.remove(c)
				}
			}

		case req := <-h.countReq:
			req.resp <- len(h.clients[req.namespace])
		}
	}
}

// Publish sends msg to every socket of namespace. It returns once the hub
// has accepted the message, or immediately if the hub has stopped.
func (h *Hub) Publish(namespace string, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msg.Type, err)
	}
	select {
	case h.broadcast <- envelope{namespace: namespace, payload: b}:
	case <-h.done:
	}
	return nil
}

// count reports the open sockets of namespace, or 0 once the hub has stopped.
func (h *Hub) count(namespace string) int {
	req := countRequest{namespace: namespace, resp: make(chan int, 1)}
	select {
	case h.countReq <- req:
		return <-req.resp
	case <-h.done:
		return 0
	}
}

func (h *Hub) remove(c *Client) {
	room, ok := h.clients[c.namespace]
	if !ok || !room[c] {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.clients, c.namespace)
	}
}
