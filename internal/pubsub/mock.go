package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*MockPubSubClient)(nil)

// MockPubSubClient records published events instead of sending them.
type MockPubSubClient struct {
	mu   sync.Mutex
	sent []Message

	SendMessageFunc func(topic EventType, data any) error
}

// Message is one recorded SendMessage call.
type Message struct {
	Topic EventType
	Data  any
}

func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	m.sent = append(m.sent, Message{Topic: topic, Data: data})
	fn := m.SendMessageFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(topic, data)
	}
	return nil
}

// ProcessMessage decodes msgpack like the real client.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

func (m *MockPubSubClient) Close() error {
	return nil
}

// Sent returns a copy of every recorded message, oldest first.
func (m *MockPubSubClient) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// FinishedEvents returns the match-finished payloads published so far.
func (m *MockPubSubClient) FinishedEvents() []MatchFinishedEvent {
	var events []MatchFinishedEvent
	for _, msg := range m.Sent() {
		if msg.Topic != EventMatchFinished {
			continue
		}
		if ev, ok := msg.Data.(MatchFinishedEvent); ok {
			events = append(events, ev)
		}
	}
	return events
}
