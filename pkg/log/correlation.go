package log

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

const correlationIDMetadataKey = "correlation_id"

// CorrelationPublisherDecorator copies the correlation ID from the message
// context into metadata, so consumers can pick it up on the other side.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get(correlationIDMetadataKey) != "" {
			continue
		}
		messages[i].Metadata.Set(correlationIDMetadataKey, CorrelationIDFromContext(messages[i].Context()))
	}

	return d.Publisher.Publish(topic, messages...)
}
