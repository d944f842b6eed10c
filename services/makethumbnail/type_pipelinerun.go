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

package makethumbnail

import (
	"context"
	"fmt"
	"io"

	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/signal"
	"golang.org/x/sync/errgroup"
)

// pipelineRun one source to destination streaming job
type pipelineRun struct {
	bucket      gcs.Bucket
	source      ObjectDescriptor
	destination ObjectDescriptor
	spec        TransformSpec
	completion  *signal.Completion
}

func newPipelineRun(bucket gcs.Bucket, source ObjectDescriptor, destination ObjectDescriptor, spec TransformSpec) *pipelineRun {
	return &pipelineRun{
		bucket:      bucket,
		source:      source,
		destination: destination,
		spec:        spec,
		completion:  signal.NewCompletion(),
	}
}

// start launches the run and returns its completion.
// The completion resolves once the destination object is committed,
// or rejects with an error wrapping ErrSourceRead, ErrTransform or ErrDestinationWrite.
// Streams are closed before the completion settles.
func (run *pipelineRun) start(ctx context.Context) *signal.Completion {
	go run.pipe(ctx)
	return run.completion
}

func (run *pipelineRun) pipe(ctx context.Context) {
	// the destination is opened only once the source is readable
	sourceReader, err := run.bucket.NewReader(ctx, run.source.Name)
	if err != nil {
		run.completion.Reject(fmt.Errorf("%w gs://%s/%s: %w", ErrSourceRead, run.source.Bucket, run.source.Name, err))
		return
	}

	writeCtx, abortWrite := context.WithCancel(ctx)
	defer abortWrite()
	destinationWriter := run.bucket.NewWriter(writeCtx, run.destination.Name, run.spec.OutputContentType)

	pipeReader, pipeWriter := io.Pipe()
	stop := context.AfterFunc(ctx, func() {
		pipeReader.CloseWithError(ctx.Err())
	})

	var g errgroup.Group
	g.Go(func() error {
		return run.transform(pipeWriter, sourceReader)
	})
	g.Go(func() error {
		return run.write(destinationWriter, pipeReader, abortWrite)
	})
	err = g.Wait()
	stop()
	sourceReader.Close()

	if err != nil {
		run.completion.Reject(err)
		return
	}
	run.completion.Resolve()
}

// transform reads the source, resizes and writes the encoded thumbnail to the pipe.
// Closing the pipe with nil signals the end of the thumbnail to the write stage.
func (run *pipelineRun) transform(pipeWriter *io.PipeWriter, sourceReader io.Reader) (err error) {
	source := &trackingReader{reader: sourceReader}
	sink := &trackingWriter{writer: pipeWriter}
	err = resize(sink, source, run.spec)
	switch {
	case err == nil:
	case source.err != nil:
		err = fmt.Errorf("%w gs://%s/%s: %w", ErrSourceRead, run.source.Bucket, run.source.Name, source.err)
	case sink.err != nil:
		// pipe closed by the write stage or by cancellation
		err = sink.err
		if !isClassified(err) {
			err = fmt.Errorf("%w gs://%s/%s: %w", ErrDestinationWrite, run.destination.Bucket, run.destination.Name, err)
		}
	default:
		err = fmt.Errorf("%w gs://%s/%s: %w", ErrTransform, run.source.Bucket, run.source.Name, err)
	}
	pipeWriter.CloseWithError(err)
	return err
}

// write copies the pipe to the destination and commits it.
// On any failure the upload is aborted before the writer is closed so that no partial object is committed.
func (run *pipelineRun) write(destinationWriter io.WriteCloser, pipeReader *io.PipeReader, abortWrite context.CancelFunc) (err error) {
	destination := &trackingWriter{writer: destinationWriter}
	_, err = io.Copy(destination, pipeReader)
	if err != nil {
		abortWrite()
		destinationWriter.Close()
		if destination.err != nil || !isClassified(err) {
			err = fmt.Errorf("%w gs://%s/%s: %w", ErrDestinationWrite, run.destination.Bucket, run.destination.Name, err)
		}
		pipeReader.CloseWithError(err)
		return err
	}
	err = destinationWriter.Close()
	if err != nil {
		err = fmt.Errorf("%w gs://%s/%s: %w", ErrDestinationWrite, run.destination.Bucket, run.destination.Name, err)
		pipeReader.CloseWithError(err)
		return err
	}
	return nil
}
