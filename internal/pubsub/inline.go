package pubsub

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*Inline)(nil)

// Handler consumes the encoded payload of one event.
type Handler func(data []byte) error

// Inline delivers events to in-process handlers on a background goroutine.
// It stands in for Pub/Sub when no project is configured. Payloads go
// through the same msgpack encoding as the real client.
type Inline struct {
	mu       sync.RWMutex
	handlers map[EventType]Handler
	wg       sync.WaitGroup
}

func NewInline() *Inline {
	return &Inline{handlers: make(map[EventType]Handler)}
}

// Subscribe registers the handler for topic, replacing any previous one.
func (i *Inline) Subscribe(topic EventType, h Handler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handlers[topic] = h
}

func (i *Inline) SendMessage(topic EventType, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic, err)
	}

	i.mu.RLock()
	h, ok := i.handlers[topic]
	i.mu.RUnlock()
	if !ok {
		log.Warn("No handler for topic, dropping message", "topic", topic)
		return nil
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		if err := h(payload); err != nil {
			log.Error("Inline handler failed", "topic", topic, "error", err)
		}
	}()
	return nil
}

func (i *Inline) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

// Wait blocks until every delivered message has been handled.
func (i *Inline) Wait() {
	i.wg.Wait()
}

// Close waits for in-flight handlers.
func (i *Inline) Close() error {
	i.Wait()
	return nil
}
