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
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// storageBucket Cloud Storage implementation of Bucket
type storageBucket struct {
	bucketHandle *storage.BucketHandle
	name         string
}

// NewStorageBucket returns a Bucket backed by Cloud Storage
func NewStorageBucket(storageClient *storage.Client, bucketName string) Bucket {
	return &storageBucket{
		bucketHandle: storageClient.Bucket(bucketName),
		name:         bucketName,
	}
}

// Name of the bucket
func (b *storageBucket) Name() string {
	return b.name
}

// NewReader opens a read stream on an object
func (b *storageBucket) NewReader(ctx context.Context, objectName string) (io.ReadCloser, error) {
	reader, err := b.bucketHandle.Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Object(%s).NewReader %w", objectName, err)
	}
	return reader, nil
}

// NewWriter opens a single request, not resumable, write stream on an object
func (b *storageBucket) NewWriter(ctx context.Context, objectName string, contentType string) io.WriteCloser {
	storageObjectWriter := b.bucketHandle.Object(objectName).NewWriter(ctx)
	storageObjectWriter.ContentType = contentType
	// zero disables chunking: one upload request, no resumable session
	storageObjectWriter.ChunkSize = 0
	return storageObjectWriter
}

// Attrs retrieves an object metadata
func (b *storageBucket) Attrs(ctx context.Context, objectName string) (ObjectAttrs, error) {
	attrs, err := b.bucketHandle.Object(objectName).Attrs(ctx)
	if err != nil {
		return ObjectAttrs{}, fmt.Errorf("Object(%s).Attrs %w", objectName, err)
	}
	return ObjectAttrs{
		Name:        attrs.Name,
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
	}, nil
}

// Delete an object
func (b *storageBucket) Delete(ctx context.Context, objectName string) error {
	err := b.bucketHandle.Object(objectName).Delete(ctx)
	if err != nil {
		return fmt.Errorf("Object(%s).Delete %w", objectName, err)
	}
	return nil
}
