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
	"io"

	"cloud.google.com/go/storage"
)

// ErrObjectNotExist is returned by readers, deletes and attrs on a missing object
var ErrObjectNotExist = storage.ErrObjectNotExist

// ObjectAttrs subset of an object metadata
type ObjectAttrs struct {
	Name        string
	ContentType string
	Size        int64
}

// Bucket gives streaming access to the objects of one bucket.
// A writer commits the object only when Close returns nil.
// Cancelling the context given to NewWriter aborts the upload and nothing is committed.
type Bucket interface {
	Name() string
	NewReader(ctx context.Context, objectName string) (io.ReadCloser, error)
	NewWriter(ctx context.Context, objectName string, contentType string) io.WriteCloser
	Attrs(ctx context.Context, objectName string) (ObjectAttrs, error)
	Delete(ctx context.Context, objectName string) error
}
