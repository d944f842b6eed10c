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

const (
	// PathToFunctionCode folder where Cloud Functions unpacks the function source code
	PathToFunctionCode = "./serverless_function_source_code/"
	// SettingsFileName instance settings file name
	SettingsFileName = "settings.yaml"
	// DevelopmentEnvironmentName default environment
	DevelopmentEnvironmentName = "dev"
	defaultThumbnailTopicName        = "thumbnail"
	defaultThumbnailSubscriptionName = "thumbnail-worker"
	defaultUsersCollectionID         = "users"
)

// Settings settings common to all services / all instances
type Settings struct {
	Hosting struct {
		ProjectID  string            `yaml:"projectID,omitempty"`
		ProjectIDs map[string]string `yaml:"projectIDs"`
		GCF        struct {
			Region string
		}
		GCS struct {
			Buckets struct {
				Images struct {
					Name            string            `yaml:",omitempty"`
					Names           map[string]string `yaml:"names"`
					Location        string            `yaml:"location,omitempty"`
					DeleteAgeInDays int64             `yaml:"deleteAgeInDays,omitempty"`
				} `yaml:"images"`
			}
		}
		Pubsub struct {
			TopicNames struct {
				Thumbnail string `yaml:"thumbnail"`
			} `yaml:"topicNames"`
			SubscriptionNames struct {
				Thumbnail string `yaml:"thumbnail"`
			} `yaml:"subscriptionNames"`
		}
		FireStore struct {
			CollectionIDs struct {
				Users string `yaml:"users"`
			} `yaml:"collectionIDs"`
		}
	}
}
