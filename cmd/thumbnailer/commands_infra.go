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
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/gps"
	"github.com/BrunoReboul/thumbnailer/utilities/gsu"
	"github.com/BrunoReboul/thumbnailer/utilities/solution"
	"github.com/spf13/cobra"
	"google.golang.org/api/serviceusage/v1"
)

const (
	subscriptionAckDeadline = 60 * time.Second
	apiPollInterval         = 5 * time.Second
)

// loadSolutionSettings shares the makethumbnail settings file, the solution part is the same for all services
func (a *app) loadSolutionSettings(ctx context.Context) (*solution.Settings, error) {
	instanceDeployment, err := makethumbnail.LoadInstanceDeployment(a.settingsPath)
	if err != nil {
		return nil, err
	}
	solutionSettings := &instanceDeployment.Core.SolutionSettings
	if err := solutionSettings.ResolveProjectID(ctx); err != nil {
		return nil, err
	}
	return solutionSettings, nil
}

func newInitCmd(a *app) *cobra.Command {
	var enableAPIs bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the images bucket, the thumbnail topic and its pull subscription when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			solutionSettings, err := a.loadSolutionSettings(ctx)
			if err != nil {
				return err
			}
			hosting := solutionSettings.Hosting

			if enableAPIs {
				serviceusageService, err := serviceusage.NewService(ctx)
				if err != nil {
					return fmt.Errorf("serviceusage.NewService %w", err)
				}
				if _, err = gsu.EnableAPIs(ctx, serviceusageService, hosting.ProjectID, gsu.RequiredAPIs(), apiPollInterval); err != nil {
					return err
				}
			}

			storageClient, err := storage.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("storage.NewClient %w", err)
			}
			a.onClose(storageClient.Close)
			err = gcs.EnsureBucket(ctx, storageClient, hosting.ProjectID, gcs.BucketSettings{
				Name:            hosting.GCS.Buckets.Images.Name,
				Location:        hosting.GCS.Buckets.Images.Location,
				DeleteAgeInDays: hosting.GCS.Buckets.Images.DeleteAgeInDays,
			})
			if err != nil {
				return err
			}

			pubsubClient, err := a.newPubsubClient(ctx, hosting.ProjectID)
			if err != nil {
				return err
			}
			topic, err := gps.EnsureTopic(ctx, pubsubClient, hosting.Pubsub.TopicNames.Thumbnail)
			if err != nil {
				return err
			}
			_, err = gps.EnsureSubscription(ctx, pubsubClient, hosting.Pubsub.SubscriptionNames.Thumbnail, topic, subscriptionAckDeadline)
			return err
		},
	}
	cmd.Flags().BoolVar(&enableAPIs, "enable-apis", true, "activate the required Google APIs first")
	return cmd
}

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <object>...",
		Short: "Request the thumbnails of existing objects through the thumbnail topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			solutionSettings, err := a.loadSolutionSettings(ctx)
			if err != nil {
				return err
			}
			pubsubClient, err := a.newPubsubClient(ctx, solutionSettings.Hosting.ProjectID)
			if err != nil {
				return err
			}
			publisher := gps.NewTopicPublisher(pubsubClient, solutionSettings.Hosting.Pubsub.TopicNames.Thumbnail)
			defer publisher.Stop()

			var waitgroup sync.WaitGroup
			var counters gps.PublishCounters
			for _, objectName := range args {
				waitgroup.Add(1)
				go gps.GetPublishCallResult(ctx, publisher.PublishAsync(ctx, []byte(objectName)), &waitgroup, objectName, &counters, 100)
			}
			waitgroup.Wait()
			fmt.Fprintf(cmd.OutOrStdout(), "%d published, %d failed\n", counters.Published, counters.Failed)
			if counters.Failed > 0 {
				return fmt.Errorf("%d messages not published", counters.Failed)
			}
			return nil
		},
	}
}
