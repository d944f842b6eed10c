// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gps

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// Publisher sends one message and returns the server assigned message id once published
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (id string, err error)
}

// TopicPublisher publishes to a Pub/Sub topic
type TopicPublisher struct {
	topic *pubsub.Topic
}

// NewTopicPublisher returns a publisher on topicID of the client project
func NewTopicPublisher(client *pubsub.Client, topicID string) *TopicPublisher {
	return &TopicPublisher{topic: client.Topic(topicID)}
}

// Publish blocks until the message is acknowledged by the server.
// No retry here as already implemented in the Go client.
func (p *TopicPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (id string, err error) {
	id, err = p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	}).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("topic(%s).Publish %w", p.topic.ID(), err)
	}
	return id, nil
}

// PublishAsync queues a message, the result is to be collected with GetPublishCallResult
func (p *TopicPublisher) PublishAsync(ctx context.Context, data []byte) *pubsub.PublishResult {
	return p.topic.Publish(ctx, &pubsub.Message{Data: data})
}

// Stop flushes pending messages and stops the topic goroutines
func (p *TopicPublisher) Stop() {
	p.topic.Stop()
}
