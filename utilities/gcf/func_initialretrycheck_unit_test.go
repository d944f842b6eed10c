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

package gcf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/functions/metadata"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
)

func TestUnitInitialRetryCheck(t *testing.T) {
	now := time.Now()
	var testCases = []struct {
		name        string
		withMeta    bool
		timestamp   time.Time
		initFailed  bool
		wantOK      bool
		wantErr     bool
		wantMessage string
	}{
		{
			name:     "freshEvent",
			withMeta: true, timestamp: now.Add(-10 * time.Second),
			wantOK: true,
		},
		{
			name:     "expiredEvent",
			withMeta: true, timestamp: now.Add(-2 * time.Hour),
			wantOK: false, wantMessage: "too many retries",
		},
		{
			name:     "initFailed",
			withMeta: true, timestamp: now, initFailed: true,
			wantOK: false, wantMessage: "init function failed",
		},
		{
			name:     "noMetadata",
			withMeta: false,
			wantOK:   false, wantErr: true, wantMessage: "redo_on_transient",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buffer bytes.Buffer
			logger := logging.NewLoggerTo(&buffer, "makethumbnail", "test", "dev")
			ctx := context.Background()
			if tc.withMeta {
				ctx = metadata.NewContext(ctx, &metadata.Metadata{EventID: "42", Timestamp: tc.timestamp})
			}
			ok, _, err := InitialRetryCheck(ctx, tc.initFailed, 600, logger)
			if ok != tc.wantOK {
				t.Errorf("want ok %v got %v", tc.wantOK, ok)
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("want error %v got %v", tc.wantErr, err)
			}
			if tc.wantMessage != "" && !strings.Contains(buffer.String(), tc.wantMessage) {
				t.Errorf("want log containing %s got %s", tc.wantMessage, buffer.String())
			}
		})
	}
}

func TestUnitIsExpired(t *testing.T) {
	timestamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if IsExpired(timestamp, timestamp.Add(599*time.Second), 600) {
		t.Errorf("599s old event should not be expired with a 600s timeout")
	}
	if !IsExpired(timestamp, timestamp.Add(601*time.Second), 600) {
		t.Errorf("601s old event should be expired with a 600s timeout")
	}
}
