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
)

// ErrRejectedWithoutError is the outcome of a completion rejected with a nil error
var ErrRejectedWithoutError = errors.New("signal: rejected without error")

// Completion settles once, either resolved or rejected.
// Observers waiting before or after settlement all see the same outcome.
type Completion struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewCompletion returns an unsettled completion
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolve settles the completion successfully. Returns false when already settled.
func (c *Completion) Resolve() bool {
	return c.settle(nil)
}

// Reject settles the completion with err. Returns false when already settled.
func (c *Completion) Reject(err error) bool {
	if err == nil {
		err = ErrRejectedWithoutError
	}
	return c.settle(err)
}

func (c *Completion) settle(err error) (settled bool) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
		settled = true
	})
	return settled
}

// Done is closed when the completion settles
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Settled reports whether the completion is resolved or rejected
func (c *Completion) Settled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Err returns the rejection error, nil when resolved or not yet settled
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Await blocks until the completion settles or ctx is done.
// When ctx ends first its error is returned and the completion is left untouched.
func (c *Completion) Await(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		// settlement racing with cancellation wins
		select {
		case <-c.done:
			return c.err
		default:
		}
		return ctx.Err()
	}
}
