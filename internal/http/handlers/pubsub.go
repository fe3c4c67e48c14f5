package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/pubsub"
)

// MatchFinishedPushHandler is the Pub/Sub push endpoint for match-finished
// events. A handling error returns 500 so Pub/Sub redelivers the message.
func MatchFinishedPushHandler(handler EventHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match finished message", "body", string(bodyBytes))

		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal push request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(push.Message.Data) == 0 {
			http.Error(w, "Empty message data", http.StatusBadRequest)
			return
		}

		if err := handler.HandleMessage(push.Message.Data); err != nil {
			log.Error("Failed to handle match finished", "messageID", push.Message.MessageID, "error", err)
			http.Error(w, "Failed to handle message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
