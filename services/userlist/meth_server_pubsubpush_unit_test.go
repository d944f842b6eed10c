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

package userlist

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
)

func TestUnitPubsubPush(t *testing.T) {
	var testCases = []struct {
		name          string
		body          string
		putSource     bool
		wantStatus    int
		wantThumbnail bool
		wantLog       string
	}{
		{
			name:          "thumbnailCreated",
			body:          `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("cat.png")) + `","messageId":"1"},"subscription":"projects/p/subscriptions/thumbnail-push"}`,
			putSource:     true,
			wantStatus:    http.StatusNoContent,
			wantThumbnail: true,
		},
		{
			name:       "missingSourceIsRedelivered",
			body:       `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("cat.png")) + `","messageId":"2"}}`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "expiredFailureIsAcknowledged",
			body:       `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("cat.png")) + `","messageId":"4","publishTime":"2020-01-01T00:00:00Z"}}`,
			wantStatus: http.StatusNoContent,
			wantLog:    `"message":"noretry"`,
		},
		{
			name:       "recentFailureIsRedelivered",
			body:       `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("cat.png")) + `","messageId":"5","publishTime":"` + time.Now().UTC().Format(time.RFC3339) + `"}}`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "noopIsAcknowledged",
			body:       `{"message":{"data":"","messageId":"3"}}`,
			putSource:  true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "malformedBodyIsAcknowledged",
			body:       `{"message":`,
			wantStatus: http.StatusNoContent,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bucket := gcs.NewMemoryBucket("photos")
			if tc.putSource {
				bucket.Put("cat.png", "image/png", testPNG(t))
			}
			var logs bytes.Buffer
			orchestrator, err := makethumbnail.NewOrchestrator(bucket, makethumbnail.DefaultTransformSpec(), logging.NewLoggerTo(&logs, "makethumbnail", "push", "dev"))
			if err != nil {
				t.Fatalf("NewOrchestrator %v", err)
			}
			env := newTestEnv(t, func(config *Config) {
				config.Bucket = bucket
				config.Orchestrator = orchestrator
				config.RetryTimeOutSeconds = 600
			})

			request := httptest.NewRequest(http.MethodPost, "/pubsub/push", strings.NewReader(tc.body))
			request.Header.Set("Content-Type", "application/json")
			response := env.do(request)

			if response.Code != tc.wantStatus {
				t.Fatalf("want status %d got %d %s", tc.wantStatus, response.Code, response.Body.String())
			}
			if _, _, found := bucket.Get("thumb_cat.png"); found != tc.wantThumbnail {
				t.Errorf("want thumbnail %v got %v", tc.wantThumbnail, found)
			}
			if tc.wantLog != "" && !strings.Contains(env.logs.String(), tc.wantLog) {
				t.Errorf("want log %s in %s", tc.wantLog, env.logs.String())
			}
		})
	}
}

func TestUnitPubsubPushDisabled(t *testing.T) {
	env := newTestEnv(t, nil)
	request := httptest.NewRequest(http.MethodPost, "/pubsub/push", strings.NewReader(`{}`))
	request.Header.Set("Content-Type", "application/json")
	if response := env.do(request); response.Code != http.StatusNotFound && response.Code != http.StatusMethodNotAllowed {
		t.Errorf("want no push route got %d", response.Code)
	}
}
