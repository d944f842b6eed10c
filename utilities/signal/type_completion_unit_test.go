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

package signal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestUnitCompletionSettlesOnce(t *testing.T) {
	errBoom := errors.New("boom")
	var testCases = []struct {
		name    string
		settle  []func(c *Completion) bool
		want    []bool
		wantErr error
	}{
		{
			name: "resolveThenReject",
			settle: []func(c *Completion) bool{
				func(c *Completion) bool { return c.Resolve() },
				func(c *Completion) bool { return c.Reject(errBoom) },
			},
			want:    []bool{true, false},
			wantErr: nil,
		},
		{
			name: "rejectThenResolve",
			settle: []func(c *Completion) bool{
				func(c *Completion) bool { return c.Reject(errBoom) },
				func(c *Completion) bool { return c.Resolve() },
			},
			want:    []bool{true, false},
			wantErr: errBoom,
		},
		{
			name: "rejectTwice",
			settle: []func(c *Completion) bool{
				func(c *Completion) bool { return c.Reject(errBoom) },
				func(c *Completion) bool { return c.Reject(errors.New("other")) },
			},
			want:    []bool{true, false},
			wantErr: errBoom,
		},
		{
			name: "rejectNil",
			settle: []func(c *Completion) bool{
				func(c *Completion) bool { return c.Reject(nil) },
			},
			want:    []bool{true},
			wantErr: ErrRejectedWithoutError,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := NewCompletion()
			if c.Settled() {
				t.Fatalf("new completion should not be settled")
			}
			for i, settle := range tc.settle {
				if got := settle(c); got != tc.want[i] {
					t.Errorf("call %d want %v got %v", i, tc.want[i], got)
				}
			}
			if !c.Settled() {
				t.Errorf("completion should be settled")
			}
			for i := 0; i < 3; i++ {
				if err := c.Await(context.Background()); !errors.Is(err, tc.wantErr) || (tc.wantErr == nil && err != nil) {
					t.Errorf("observation %d want %v got %v", i, tc.wantErr, err)
				}
			}
			if !errors.Is(c.Err(), tc.wantErr) || (tc.wantErr == nil && c.Err() != nil) {
				t.Errorf("Err want %v got %v", tc.wantErr, c.Err())
			}
		})
	}
}

func TestUnitCompletionConcurrentSettlers(t *testing.T) {
	c := NewCompletion()
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var settled bool
			if i%2 == 0 {
				settled = c.Resolve()
			} else {
				settled = c.Reject(errors.New("concurrent"))
			}
			if settled {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("want exactly one settlement, got %d", wins)
	}
}

func TestUnitCompletionAwaitContext(t *testing.T) {
	c := NewCompletion()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want deadline exceeded got %v", err)
	}
	if c.Settled() {
		t.Errorf("cancelled await must not settle the completion")
	}
	if c.Err() != nil {
		t.Errorf("unsettled completion Err want nil got %v", c.Err())
	}
	go c.Resolve()
	if err := c.Await(context.Background()); err != nil {
		t.Errorf("want nil got %v", err)
	}
	select {
	case <-c.Done():
	default:
		t.Errorf("Done should be closed once resolved")
	}
}
