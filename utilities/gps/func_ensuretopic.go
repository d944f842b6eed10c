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
	"log"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EnsureTopic check if a topic already exist, if not create it, labelled with its name
func EnsureTopic(ctx context.Context, client *pubsub.Client, topicID string) (topic *pubsub.Topic, err error) {
	topic = client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic(%s).Exists %v", topicID, err)
	}
	if exists {
		log.Printf("gps topic found %s", topicID)
		return topic, nil
	}
	topic, err = client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{
		Labels: map[string]string{"name": strings.ToLower(topicID)},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return nil, fmt.Errorf("client.CreateTopic %s %v", topicID, err)
		}
		log.Printf("gps try to create topic but already exist %s", topicID)
		return client.Topic(topicID), nil
	}
	log.Printf("gps topic created %s", topicID)
	return topic, nil
}

// EnsureSubscription check if a pull subscription already exist on topic, if not create it
func EnsureSubscription(ctx context.Context, client *pubsub.Client, subscriptionID string, topic *pubsub.Topic, ackDeadline time.Duration) (subscription *pubsub.Subscription, err error) {
	subscription = client.Subscription(subscriptionID)
	exists, err := subscription.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription(%s).Exists %v", subscriptionID, err)
	}
	if exists {
		log.Printf("gps subscription found %s", subscriptionID)
		return subscription, nil
	}
	subscription, err = client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: ackDeadline,
		Labels:      map[string]string{"name": strings.ToLower(subscriptionID)},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return nil, fmt.Errorf("client.CreateSubscription %s %v", subscriptionID, err)
		}
		log.Printf("gps try to create subscription but already exist %s", subscriptionID)
		return client.Subscription(subscriptionID), nil
	}
	log.Printf("gps subscription created %s", subscriptionID)
	return subscription, nil
}
