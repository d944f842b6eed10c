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
	"time"

	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/services/thumbnailworker"
	"github.com/BrunoReboul/thumbnailer/services/userlist"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/gps"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/model"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var push bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the user list web application",
		Long: `Serve the user list web application and its JSON API.
Uploaded images go to the images bucket and their names to the thumbnail topic.
With --push the server also hosts the thumbnail pipeline on POST /pubsub/push.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), push)
		},
	}
	cmd.Flags().BoolVar(&push, "push", false, "run the thumbnail pipeline for a Pub/Sub push subscription")
	return cmd
}

func (a *app) serve(ctx context.Context, push bool) error {
	instanceDeployment, err := userlist.LoadInstanceDeployment(a.settingsPath)
	if err != nil {
		return err
	}
	hosting := &instanceDeployment.Core.SolutionSettings.Hosting
	service := instanceDeployment.Settings.Service
	needsProject := a.cloudLogging || service.DataBackend == model.BackendFirestore || hosting.GCS.Buckets.Images.Name != ""
	if needsProject {
		if err := instanceDeployment.Core.SolutionSettings.ResolveProjectID(ctx); err != nil {
			return err
		}
	}
	logger, err := a.newLogger(ctx, hosting.ProjectID, instanceDeployment.Core.ServiceName,
		instanceDeployment.Core.InstanceName, instanceDeployment.Core.EnvironmentName)
	if err != nil {
		return err
	}

	m, err := model.New(ctx, service.DataBackend, instanceDeployment.ModelOptions())
	if err != nil {
		return err
	}
	a.onClose(m.Close)
	config := userlist.Config{
		Model:    m,
		Logger:   logger,
		PageSize: service.PageSize,
	}

	if hosting.GCS.Buckets.Images.Name != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("storage.NewClient %w", err)
		}
		a.onClose(storageClient.Close)
		config.Bucket = gcs.NewStorageBucket(storageClient, hosting.GCS.Buckets.Images.Name)

		pubsubClient, err := a.newPubsubClient(ctx, hosting.ProjectID)
		if err != nil {
			return err
		}
		publisher := gps.NewTopicPublisher(pubsubClient, hosting.Pubsub.TopicNames.Thumbnail)
		a.onClose(func() error {
			publisher.Stop()
			return nil
		})
		config.Publisher = publisher
	} else {
		logger.Log(logging.Entry{
			Severity:    "WARNING",
			Message:     "uploads_disabled",
			Description: "no images bucket configured, set BUCKETNAME",
		})
	}

	if push {
		orchestrator, thumbnailDeployment, _, err := a.newOrchestrator(ctx, "makethumbnail")
		if err != nil {
			return err
		}
		config.Orchestrator = orchestrator
		config.RetryTimeOutSeconds = thumbnailDeployment.Settings.Service.GCF.RetryTimeOutSeconds
	}

	server, err := userlist.NewServer(config)
	if err != nil {
		return err
	}
	return server.Start(ctx, ":"+service.Port)
}

func newWorkerCmd(a *app) *cobra.Command {
	var maxOutstandingMessages int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Create thumbnails for the messages of the thumbnail subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orchestrator, instanceDeployment, logger, err := a.newOrchestrator(ctx, "thumbnailworker")
			if err != nil {
				return err
			}
			solutionSettings := &instanceDeployment.Core.SolutionSettings
			if err := solutionSettings.ResolveProjectID(ctx); err != nil {
				return err
			}
			pubsubClient, err := a.newPubsubClient(ctx, solutionSettings.Hosting.ProjectID)
			if err != nil {
				return err
			}
			worker, err := thumbnailworker.NewWorker(thumbnailworker.Config{
				Subscription:           pubsubClient.Subscription(solutionSettings.Hosting.Pubsub.SubscriptionNames.Thumbnail),
				Orchestrator:           orchestrator,
				Logger:                 logger,
				RetryTimeOutSeconds:    instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds,
				MaxOutstandingMessages: maxOutstandingMessages,
			})
			if err != nil {
				return err
			}
			return worker.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&maxOutstandingMessages, "max-outstanding", 10, "maximum number of images processed at the same time")
	return cmd
}

func newProcessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "process <object>",
		Short: "Create the thumbnail of one object of the images bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orchestrator, _, _, err := a.newOrchestrator(ctx, "makethumbnail")
			if err != nil {
				return err
			}
			outcome := orchestrator.Run(ctx, makethumbnail.NewTriggerEvent([]byte(args[0]), "", time.Time{}))
			switch outcome.State {
			case makethumbnail.StateSucceeded:
				fmt.Fprintf(cmd.OutOrStdout(), "gs://%s/%s\n", outcome.Destination.Bucket, outcome.Destination.Name)
				return nil
			case makethumbnail.StateNoOp:
				return fmt.Errorf("empty object name")
			default:
				return outcome.Err
			}
		},
	}
}
