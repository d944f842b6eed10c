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

package makethumbnail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/validater"
	"github.com/google/uuid"
)

// State of a run
type State string

// Run states, a run ends in StateNoOp, StateSucceeded or StateFailed
const (
	StateIdle      State = "idle"
	StateDecoding  State = "decoding"
	StateNoOp      State = "noop"
	StateLocated   State = "located"
	StatePiping    State = "piping"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Outcome of a run. Source and Destination are empty on StateNoOp, Err is set on StateFailed only.
type Outcome struct {
	State       State
	RunID       string
	Source      ObjectDescriptor
	Destination ObjectDescriptor
	Err         error
}

// Orchestrator turns trigger events into thumbnails. Safe for concurrent use, each Run is independent.
type Orchestrator struct {
	bucket gcs.Bucket
	spec   TransformSpec
	logger *logging.Logger
}

// NewOrchestrator validates spec and returns an orchestrator working on bucket
func NewOrchestrator(bucket gcs.Bucket, spec TransformSpec, logger *logging.Logger) (*Orchestrator, error) {
	if bucket == nil {
		return nil, errors.New("makethumbnail: nil bucket")
	}
	if bucket.Name() == "" {
		return nil, errors.New("makethumbnail: bucket name is empty")
	}
	if err := validater.ValidateStruct(spec, "TransformSpec"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewLogger(defaultServiceName, "", "")
	}
	return &Orchestrator{
		bucket: bucket,
		spec:   spec,
		logger: logger,
	}, nil
}

// Run processes one trigger event until the thumbnail is committed, a stage fails or ctx is done.
// On cancellation Run waits for the streams to unwind, so the outcome matches the bucket content.
// Failures are reported in the outcome, never retried here.
func (o *Orchestrator) Run(ctx context.Context, event TriggerEvent) (outcome Outcome) {
	outcome = Outcome{State: StateIdle, RunID: uuid.New().String()}
	entry := logging.Entry{
		RunID:              outcome.RunID,
		TriggeringPubsubID: event.MessageID,
	}
	if !event.PublishTime.IsZero() {
		publishTime := event.PublishTime
		entry.TriggeringPubsubTimestamp = &publishTime
		entry.TriggeringPubsubAgeSeconds = time.Since(publishTime).Seconds()
	}

	outcome.State = StateDecoding
	objectName, ok := DecodeTrigger(event)
	if !ok {
		outcome.State = StateNoOp
		entry.Severity = "NOTICE"
		entry.Message = "noop"
		entry.Description = "trigger event carries no object name"
		o.logger.Log(entry)
		return outcome
	}

	outcome.Source, outcome.Destination = Locate(objectName, o.bucket.Name())
	outcome.State = StateLocated
	entry.SourceBucket = outcome.Source.Bucket
	entry.SourceObject = outcome.Source.Name
	entry.DestinationObject = outcome.Destination.Name
	entry.Severity = "NOTICE"
	entry.Message = "start"
	entry.Description = fmt.Sprintf("processing gs://%s/%s", outcome.Source.Bucket, outcome.Source.Name)
	o.logger.Log(entry)

	outcome.State = StatePiping
	start := time.Now()
	completion := newPipelineRun(o.bucket, outcome.Source, outcome.Destination, o.spec).start(ctx)
	err := completion.Await(ctx)
	if err != nil && !completion.Settled() {
		// cancelled: the streams unwind and the run settles, commit included
		<-completion.Done()
		err = completion.Err()
	}
	entry.LatencySeconds = time.Since(start).Seconds()
	if err != nil {
		outcome.State = StateFailed
		outcome.Err = err
		entry.Severity = "CRITICAL"
		entry.Message = "failed"
		entry.Description = err.Error()
		o.logger.Log(entry)
		return outcome
	}
	outcome.State = StateSucceeded
	entry.Severity = "INFO"
	entry.Message = "thumbnail_created"
	entry.Description = fmt.Sprintf("gs://%s/%s", outcome.Destination.Bucket, outcome.Destination.Name)
	o.logger.Log(entry)
	return outcome
}
