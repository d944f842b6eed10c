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

package thumbnailworker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcf"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/str"
)

// Config worker settings
type Config struct {
	Subscription           *pubsub.Subscription
	Orchestrator           *makethumbnail.Orchestrator
	Logger                 *logging.Logger
	RetryTimeOutSeconds    int64
	MaxOutstandingMessages int
}

// Worker receives thumbnail requests
type Worker struct {
	subscription        *pubsub.Subscription
	orchestrator        *makethumbnail.Orchestrator
	logger              *logging.Logger
	retryTimeOutSeconds int64
}

// NewWorker checks the config and sets the subscription flow control
func NewWorker(config Config) (*Worker, error) {
	if config.Subscription == nil || config.Orchestrator == nil {
		return nil, errors.New("thumbnailworker: subscription and orchestrator are required")
	}
	if config.Logger == nil {
		config.Logger = logging.NewLogger("thumbnailworker", "", "")
	}
	if config.MaxOutstandingMessages > 0 {
		config.Subscription.ReceiveSettings.MaxOutstandingMessages = config.MaxOutstandingMessages
	}
	return &Worker{
		subscription:        config.Subscription,
		orchestrator:        config.Orchestrator,
		logger:              config.Logger,
		retryTimeOutSeconds: config.RetryTimeOutSeconds,
	}, nil
}

// Run receives messages until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Log(logging.Entry{
		Severity:    "NOTICE",
		Message:     "receiving",
		Description: w.subscription.String(),
	})
	err := w.subscription.Receive(ctx, w.handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("subscription.Receive %w", err)
	}
	return nil
}

func (w *Worker) handle(ctx context.Context, msg *pubsub.Message) {
	now := time.Now()
	if w.retryTimeOutSeconds > 0 && gcf.IsExpired(msg.PublishTime, now, w.retryTimeOutSeconds) {
		w.logger.Log(logging.Entry{
			Severity:                   "CRITICAL",
			Message:                    "noretry",
			Description:                fmt.Sprintf("too many retries for expired event, attributes %s", str.FlattenMapStringString(msg.Attributes)),
			TriggeringPubsubID:         msg.ID,
			TriggeringPubsubTimestamp:  &msg.PublishTime,
			TriggeringPubsubAgeSeconds: now.Sub(msg.PublishTime).Seconds(),
			Now:                        &now,
		})
		msg.Ack() // NO MORE RETRY
		return
	}
	err := makethumbnail.Process(ctx, w.orchestrator, makethumbnail.NewTriggerEvent(msg.Data, msg.ID, msg.PublishTime))
	if err != nil {
		msg.Nack() // RETRY
		return
	}
	msg.Ack()
}
