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

package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
)

// BucketSettings desired state of a bucket
type BucketSettings struct {
	Name            string `valid:"isNotZeroValue"`
	Location        string
	DeleteAgeInDays int64 `yaml:"deleteAgeInDays,omitempty"`
}

// EnsureBucket creates the bucket when it does not exist yet, with uniform bucket level access and an optional delete lifecycle
func EnsureBucket(ctx context.Context, storageClient *storage.Client, projectID string, settings BucketSettings) (err error) {
	bucket := storageClient.Bucket(settings.Name)
	retreivedAttrs, err := bucket.Attrs(ctx)
	if err == nil {
		log.Printf("gcs bucket found %s location %s", retreivedAttrs.Name, retreivedAttrs.Location)
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("bucket.Attrs %v", err)
	}

	var bucketAttrs storage.BucketAttrs
	bucketAttrs.Location = settings.Location
	bucketAttrs.StorageClass = "STANDARD"
	bucketAttrs.Labels = map[string]string{"name": strings.ToLower(settings.Name)}
	bucketAttrs.UniformBucketLevelAccess = storage.UniformBucketLevelAccess{Enabled: true}
	if settings.DeleteAgeInDays > 0 {
		var lifecycleRule storage.LifecycleRule
		lifecycleRule.Action.Type = storage.DeleteAction
		lifecycleRule.Condition.AgeInDays = settings.DeleteAgeInDays
		bucketAttrs.Lifecycle = storage.Lifecycle{Rules: []storage.LifecycleRule{lifecycleRule}}
	}

	err = bucket.Create(ctx, projectID, &bucketAttrs)
	if err != nil {
		return fmt.Errorf("bucket.Create %v", err)
	}
	log.Printf("gcs bucket created %s", settings.Name)
	return nil
}
