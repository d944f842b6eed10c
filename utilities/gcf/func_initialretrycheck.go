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

package gcf

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/functions/metadata"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
)

// InitialRetryCheck decides whether an event occurence should be processed.
// ok false with a nil error means drop the event, NO RETRY.
// ok false with an error means let the host redeliver, RETRY.
func InitialRetryCheck(ctxEvent context.Context, initFailed bool, retryTimeOutSeconds int64, logger *logging.Logger) (ok bool, eventMetadata *metadata.Metadata, err error) {
	eventMetadata, err = metadata.FromContext(ctxEvent)
	if err != nil {
		// Assume an error on the function invoker and try again.
		logger.Log(logging.Entry{
			Severity:    "CRITICAL",
			Message:     "redo_on_transient",
			Description: fmt.Sprintf("metadata.FromContext: %v", err),
		})
		return false, nil, fmt.Errorf("metadata.FromContext: %v", err) // RETRY
	}
	if initFailed {
		logger.Log(logging.Entry{
			Severity:           "CRITICAL",
			Message:            "noretry",
			Description:        "init function failed",
			TriggeringPubsubID: eventMetadata.EventID,
		})
		return false, eventMetadata, nil // NO RETRY
	}

	// Ignore events that are too old.
	now := time.Now()
	if IsExpired(eventMetadata.Timestamp, now, retryTimeOutSeconds) {
		logger.Log(logging.Entry{
			Severity:                   "CRITICAL",
			Message:                    "noretry",
			Description:                "too many retries for expired event",
			TriggeringPubsubID:         eventMetadata.EventID,
			TriggeringPubsubTimestamp:  &eventMetadata.Timestamp,
			TriggeringPubsubAgeSeconds: now.Sub(eventMetadata.Timestamp).Seconds(),
			Now:                        &now,
		})
		return false, eventMetadata, nil // NO MORE RETRY
	}
	return true, eventMetadata, nil
}

// IsExpired true when the event is older than retryTimeOutSeconds at now
func IsExpired(eventTimestamp time.Time, now time.Time, retryTimeOutSeconds int64) bool {
	expiration := eventTimestamp.Add(time.Duration(retryTimeOutSeconds) * time.Second)
	return now.After(expiration)
}
