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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var errWriterClosed = errors.New("gcs: writer already closed")

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryBucket in process Bucket, used by tests and local runs
type MemoryBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string]memoryObject
	ops     int
}

// NewMemoryBucket returns an empty in memory bucket
func NewMemoryBucket(bucketName string) *MemoryBucket {
	return &MemoryBucket{
		name:    bucketName,
		objects: make(map[string]memoryObject),
	}
}

// Name of the bucket
func (b *MemoryBucket) Name() string {
	return b.name
}

// Put stores an object
func (b *MemoryBucket) Put(objectName string, contentType string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectName] = memoryObject{contentType: contentType, data: append([]byte(nil), data...)}
}

// Get returns a copy of an object content
func (b *MemoryBucket) Get(objectName string) (data []byte, contentType string, found bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	object, found := b.objects[objectName]
	if !found {
		return nil, "", false
	}
	return append([]byte(nil), object.data...), object.contentType, true
}

// Ops counts the Bucket interface calls, Put and Get excluded
func (b *MemoryBucket) Ops() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ops
}

// NewReader opens a read stream on a copy of the object
func (b *MemoryBucket) NewReader(ctx context.Context, objectName string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	object, found := b.objects[objectName]
	if !found {
		return nil, fmt.Errorf("Object(%s).NewReader %w", objectName, ErrObjectNotExist)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), object.data...))), nil
}

// NewWriter opens a write stream committed on Close
func (b *MemoryBucket) NewWriter(ctx context.Context, objectName string, contentType string) io.WriteCloser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops++
	return &memoryWriter{
		bucket:      b,
		ctx:         ctx,
		objectName:  objectName,
		contentType: contentType,
	}
}

// Attrs retrieves an object metadata
func (b *MemoryBucket) Attrs(ctx context.Context, objectName string) (ObjectAttrs, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops++
	object, found := b.objects[objectName]
	if !found {
		return ObjectAttrs{}, fmt.Errorf("Object(%s).Attrs %w", objectName, ErrObjectNotExist)
	}
	return ObjectAttrs{
		Name:        objectName,
		ContentType: object.contentType,
		Size:        int64(len(object.data)),
	}, nil
}

// Delete an object
func (b *MemoryBucket) Delete(ctx context.Context, objectName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops++
	if _, found := b.objects[objectName]; !found {
		return fmt.Errorf("Object(%s).Delete %w", objectName, ErrObjectNotExist)
	}
	delete(b.objects, objectName)
	return nil
}

type memoryWriter struct {
	bucket      *MemoryBucket
	ctx         context.Context
	objectName  string
	contentType string
	buffer      bytes.Buffer
	closed      bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errWriterClosed
	}
	if err := w.ctx.Err(); err != nil {
		return 0, err
	}
	return w.buffer.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return errWriterClosed
	}
	w.closed = true
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.bucket.Put(w.objectName, w.contentType, w.buffer.Bytes())
	return nil
}
