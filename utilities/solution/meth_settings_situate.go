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

package solution

// Situate set settings from settings based on a given situation
// Situation is the environment name (string)
// Set settings are: projectID, images bucket name, and defaults for topic, subscription and collection names
func (settings *Settings) Situate(environmentName string) {
	if projectID, ok := settings.Hosting.ProjectIDs[environmentName]; ok {
		settings.Hosting.ProjectID = projectID
	}
	if bucketName, ok := settings.Hosting.GCS.Buckets.Images.Names[environmentName]; ok {
		settings.Hosting.GCS.Buckets.Images.Name = bucketName
	}
	if settings.Hosting.Pubsub.TopicNames.Thumbnail == "" {
		settings.Hosting.Pubsub.TopicNames.Thumbnail = defaultThumbnailTopicName
	}
	if settings.Hosting.Pubsub.SubscriptionNames.Thumbnail == "" {
		settings.Hosting.Pubsub.SubscriptionNames.Thumbnail = defaultThumbnailSubscriptionName
	}
	if settings.Hosting.FireStore.CollectionIDs.Users == "" {
		settings.Hosting.FireStore.CollectionIDs.Users = defaultUsersCollectionID
	}
}
