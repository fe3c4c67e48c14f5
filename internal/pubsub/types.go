package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It is
// also the topic name.
type EventType string

const (
	EventMatchFinished EventType = "match-finished"
)

// MatchFinishedEvent is published once, by the game that ends a match.
type MatchFinishedEvent struct {
	MatchID    string    `msgpack:"match_id"`
	FinishedAt time.Time `msgpack:"finished_at"`
	DryRun     bool      `msgpack:"dry_run"`
}

// PushRequest is the body Google Cloud Pub/Sub posts to push endpoints.
// Data is base64 in JSON and decoded by encoding/json into the raw payload.
type PushRequest struct {
	Message struct {
		Data       []byte            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
