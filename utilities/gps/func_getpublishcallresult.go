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

package gps

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"cloud.google.com/go/pubsub"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
)

// PublishCounters shared by GetPublishCallResult goroutines
type PublishCounters struct {
	Published uint64
	Failed    uint64
}

// GetPublishCallResult func to be used in go routine to scale pubsub event publish
func GetPublishCallResult(ctx context.Context, publishResult *pubsub.PublishResult, waitgroup *sync.WaitGroup, msgInfo string, counters *PublishCounters, logEventEveryXPubSubMsg uint64) {
	defer waitgroup.Done()
	id, err := publishResult.Get(ctx)
	if err != nil {
		log.Println(logging.Entry{
			Severity:    "WARNING",
			Message:     "publish_failed",
			Description: fmt.Sprintf("error count %d on %s: %v", atomic.AddUint64(&counters.Failed, 1), msgInfo, err),
		})
		return
	}
	msgNumber := atomic.AddUint64(&counters.Published, 1)
	if logEventEveryXPubSubMsg > 0 && msgNumber%logEventEveryXPubSubMsg == 0 {
		log.Println(logging.Entry{
			Message:     "publish_progression",
			Description: fmt.Sprintf("%d messages published, now %s id %s", msgNumber, msgInfo, id),
		})
	}
}
