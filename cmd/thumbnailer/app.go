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

package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
)

// newOrchestrator builds the thumbnail orchestrator on the images bucket of the settings
func (a *app) newOrchestrator(ctx context.Context, serviceName string) (*makethumbnail.Orchestrator, *makethumbnail.InstanceDeployment, *logging.Logger, error) {
	instanceDeployment, err := makethumbnail.LoadInstanceDeployment(a.settingsPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if a.cloudLogging {
		if err := instanceDeployment.Core.SolutionSettings.ResolveProjectID(ctx); err != nil {
			return nil, nil, nil, err
		}
	}
	logger, err := a.newLogger(ctx, instanceDeployment.Core.SolutionSettings.Hosting.ProjectID,
		serviceName, instanceDeployment.Core.InstanceName, instanceDeployment.Core.EnvironmentName)
	if err != nil {
		return nil, nil, nil, err
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("storage.NewClient %w", err)
	}
	a.onClose(storageClient.Close)
	bucket := gcs.NewStorageBucket(storageClient, instanceDeployment.Core.SolutionSettings.Hosting.GCS.Buckets.Images.Name)
	orchestrator, err := makethumbnail.NewOrchestrator(bucket, instanceDeployment.Settings.Service.Thumbnail, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return orchestrator, instanceDeployment, logger, nil
}

func (a *app) newPubsubClient(ctx context.Context, projectID string) (*pubsub.Client, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub.NewClient %w", err)
	}
	a.onClose(client.Close)
	return client, nil
}
