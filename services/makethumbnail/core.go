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
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/thumbnailer/utilities/ffo"
	"github.com/BrunoReboul/thumbnailer/utilities/gcf"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/solution"
	"github.com/google/uuid"
)

// Global structure for global variables to optimize the cloud function performances
type Global struct {
	ctx                 context.Context
	initFailed          bool
	initID              string
	logger              *logging.Logger
	orchestrator        *Orchestrator
	retryTimeOutSeconds int64
}

// Initialize is to be executed in the init() function of the cloud function to optimize the cold start
func Initialize(ctx context.Context, global *Global) (err error) {
	log.SetFlags(0)
	global.ctx = ctx
	global.initFailed = false
	global.initID = uuid.New().String()
	global.logger = logging.NewLogger(defaultServiceName, os.Getenv("K_SERVICE"), "")

	defer func() {
		if err != nil {
			global.initFailed = true
			global.logger.Log(logging.Entry{
				Severity:    "CRITICAL",
				Message:     "init_failed",
				Description: err.Error(),
				InitID:      global.initID,
			})
		}
	}()

	err = ffo.LoadDotEnv()
	if err != nil {
		return fmt.Errorf("LoadDotEnv %v", err)
	}
	instanceDeployment, err := LoadInstanceDeployment(solution.PathToFunctionCode + solution.SettingsFileName)
	if err != nil {
		return err
	}
	global.logger = logging.NewLogger(instanceDeployment.Core.ServiceName,
		instanceDeployment.Core.InstanceName,
		instanceDeployment.Core.EnvironmentName)
	global.retryTimeOutSeconds = instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage.NewClient %v", err)
	}
	bucket := gcs.NewStorageBucket(storageClient, instanceDeployment.Core.SolutionSettings.Hosting.GCS.Buckets.Images.Name)
	global.orchestrator, err = NewOrchestrator(bucket, instanceDeployment.Settings.Service.Thumbnail, global.logger)
	if err != nil {
		return err
	}
	global.logger.Log(logging.Entry{
		Severity:    "NOTICE",
		Message:     "init_done",
		Description: fmt.Sprintf("bucket %s", bucket.Name()),
		InitID:      global.initID,
	})
	return nil
}

// EntryPoint is the function to be executed for each cloud function occurence
func EntryPoint(ctxEvent context.Context, event TriggerEvent, global *Global) error {
	ok, eventMetadata, err := gcf.InitialRetryCheck(ctxEvent, global.initFailed, global.retryTimeOutSeconds, global.logger)
	if !ok {
		return err
	}
	if event.MessageID == "" {
		event.MessageID = eventMetadata.EventID
	}
	if event.PublishTime.IsZero() {
		event.PublishTime = eventMetadata.Timestamp
	}
	return Process(ctxEvent, global.orchestrator, event)
}

// Process runs the orchestrator and maps the outcome to the host retry contract
func Process(ctx context.Context, orchestrator *Orchestrator, event TriggerEvent) error {
	outcome := orchestrator.Run(ctx, event)
	switch outcome.State {
	case StateNoOp, StateSucceeded:
		return nil // NO RETRY
	default:
		return fmt.Errorf("run %s gs://%s/%s %w", outcome.RunID, outcome.Source.Bucket, outcome.Source.Name, outcome.Err) // RETRY
	}
}

