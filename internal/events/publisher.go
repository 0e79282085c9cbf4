package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// StatusEvent describes one message lifecycle transition
type StatusEvent struct {
	MessageID     string    `json:"message_id"`
	CompanyID     string    `json:"company_id"`
	ApplicationID string    `json:"application_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	StatusMessage string    `json:"status_message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher emits lifecycle events for external consumers. Publishing is
// best-effort: failures are logged and never affect the lifecycle itself.
type Publisher interface {
	PublishStatusChange(evt StatusEvent)
}

// pubsubPublisher publishes status events to a Google Pub/Sub topic
type pubsubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

func NewPubSubPublisher(projectID, topicName, credentialsFile string) (Publisher, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %v", err)
	}

	return &pubsubPublisher{
		client: client,
		topic:  client.Topic(topicName),
	}, nil
}

func (p *pubsubPublisher) PublishStatusChange(evt StatusEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[PubSub] Failed to encode status event for message %s: %v", evt.MessageID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res := p.topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := res.Get(ctx); err != nil {
		log.Printf("[PubSub] Failed to publish status event for message %s: %v", evt.MessageID, err)
		return
	}

	log.Printf("[PubSub] Published status event for message %s: %s -> %s", evt.MessageID, evt.OldStatus, evt.NewStatus)
}
