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

package thumbnailworker

import (
	"bytes"
	"context"
	"image/color"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/gps"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/disintegration/imaging"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newTestSubscription(t *testing.T) (*pubsub.Client, *pubsub.Topic, *pubsub.Subscription) {
	t.Helper()
	ctx := context.Background()
	srv := pstest.NewServer()
	t.Cleanup(func() { srv.Close() })
	conn, err := grpc.Dial(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc.Dial %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	client, err := pubsub.NewClient(ctx, "thumbnailer-dev", option.WithGRPCConn(conn))
	if err != nil {
		t.Fatalf("pubsub.NewClient %v", err)
	}
	t.Cleanup(func() { client.Close() })
	topic, err := gps.EnsureTopic(ctx, client, "thumbnail")
	if err != nil {
		t.Fatalf("EnsureTopic %v", err)
	}
	t.Cleanup(topic.Stop)
	subscription, err := gps.EnsureSubscription(ctx, client, "thumbnail-worker", topic, 10*time.Second)
	if err != nil {
		t.Fatalf("EnsureSubscription %v", err)
	}
	return client, topic, subscription
}

func TestUnitWorker(t *testing.T) {
	client, _, subscription := newTestSubscription(t)

	bucket := gcs.NewMemoryBucket("photos")
	var source bytes.Buffer
	if err := imaging.Encode(&source, imaging.New(800, 400, color.NRGBA{B: 255, A: 255}), imaging.PNG); err != nil {
		t.Fatalf("imaging.Encode %v", err)
	}
	bucket.Put("cat.png", "image/png", source.Bytes())

	var logs bytes.Buffer
	logger := logging.NewLoggerTo(&logs, "thumbnailworker", "test", "dev")
	orchestrator, err := makethumbnail.NewOrchestrator(bucket, makethumbnail.DefaultTransformSpec(), logger)
	if err != nil {
		t.Fatalf("NewOrchestrator %v", err)
	}
	worker, err := NewWorker(Config{
		Subscription:           subscription,
		Orchestrator:           orchestrator,
		Logger:                 logger,
		RetryTimeOutSeconds:    600,
		MaxOutstandingMessages: 4,
	})
	if err != nil {
		t.Fatalf("NewWorker %v", err)
	}

	publisher := gps.NewTopicPublisher(client, "thumbnail")
	defer publisher.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := publisher.Publish(ctx, []byte("cat.png"), nil); err != nil {
		t.Fatalf("Publish %v", err)
	}
	if _, err := publisher.Publish(ctx, []byte(""), nil); err != nil {
		t.Fatalf("Publish %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- worker.Run(ctx)
	}()

	for {
		if _, _, found := bucket.Get("thumb_cat.png"); found {
			break
		}
		select {
		case <-ctx.Done():
			t.Fatalf("thumbnail not created before timeout")
		case <-time.After(20 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run %v", err)
	}
}

func TestUnitNewWorkerInvalid(t *testing.T) {
	if _, err := NewWorker(Config{}); err == nil {
		t.Errorf("want an error got nil")
	}
}
