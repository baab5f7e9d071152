// Package notify fans event notifications out over a Redis channel.
// Publishing is fire-and-forget: failures are logged and never reach the
// operation that triggered them.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"midway/models"
	"midway/rdx"
)

const channel = "meetup-notifications"

type Emitter struct{}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Emit(ctx context.Context, n models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[notify] failed to marshal notification: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[notify] failed to publish notification: %v", err)
		return
	}
}

// StartWorker consumes the notification channel. Actual delivery transport
// (push, mail) hangs off here; for now deliveries are logged.
func StartWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[notify] worker listening for notifications...")

	for msg := range ch {
		var n models.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Printf("[notify] failed to parse notification: %v", err)
			continue
		}
		log.Printf("[notify] event=%s kind=%s recipients=%d: %s",
			n.EventID, n.Kind, len(n.Recipients), n.Message)
	}
}
