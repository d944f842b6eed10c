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

import (
	"log"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestUnitSituate(t *testing.T) {
	type testcases []struct {
		Name        string
		Settings    Settings
		Environment string
		Want        map[string]string
	}
	var testCases testcases

	yamlBytes := []byte(`---
- name: set1
  settings:
    hosting:
      projectIDs:
        dev: userlist-dev
        prd: userlist-prd
      gcs:
        buckets:
          images:
            names:
              dev: userlist-images-dev
              prd: userlist-images-prd
  environment: prd
  want:
    projectID: userlist-prd
    imagesBucketName: userlist-images-prd
    thumbnailTopicName: thumbnail
    thumbnailSubscriptionName: thumbnail-worker
    usersCollectionID: users
- name: set2
  settings:
    hosting:
      projectID: fixed-project
      gcs:
        buckets:
          images:
            name: fixed-bucket
      pubsub:
        topicNames:
          thumbnail: make-thumbnail
        subscriptionNames:
          thumbnail: make-thumbnail-pull
      firestore:
        collectionIDs:
          users: people
  environment: dev
  want:
    projectID: fixed-project
    imagesBucketName: fixed-bucket
    thumbnailTopicName: make-thumbnail
    thumbnailSubscriptionName: make-thumbnail-pull
    usersCollectionID: people`)

	err := yaml.Unmarshal(yamlBytes, &testCases)
	if err != nil {
		log.Fatalf("Unable to unmarshal yaml test data %v", err)
	}

	for _, tc := range testCases {
		tc := tc // https://github.com/golang/go/wiki/CommonMistakes#using-goroutines-on-loop-iterator-variables
		tc.Settings.Situate(tc.Environment)
		for key, wantedValue := range tc.Want {
			key := key
			wantedValue := wantedValue
			testName := tc.Name + "-" + key
			t.Run(testName, func(t *testing.T) {
				t.Parallel()
				var got string
				switch key {
				case "projectID":
					got = tc.Settings.Hosting.ProjectID
				case "imagesBucketName":
					got = tc.Settings.Hosting.GCS.Buckets.Images.Name
				case "thumbnailTopicName":
					got = tc.Settings.Hosting.Pubsub.TopicNames.Thumbnail
				case "thumbnailSubscriptionName":
					got = tc.Settings.Hosting.Pubsub.SubscriptionNames.Thumbnail
				case "usersCollectionID":
					got = tc.Settings.Hosting.FireStore.CollectionIDs.Users
				default:
					t.Fatalf("unknown key %s", key)
				}
				if wantedValue != got {
					t.Errorf("Want %s '%s' got '%s'", key, wantedValue, got)
				}
			})
		}
	}
}
