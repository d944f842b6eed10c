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

package model

import (
	"context"
	"fmt"
)

// Backend names
const (
	BackendFirestore = "firestore"
	BackendBolt      = "bolt"
)

// Options backend specific settings
type Options struct {
	ProjectID    string
	CollectionID string
	BoltPath     string
}

// New returns the model of the named backend
func New(ctx context.Context, backend string, options Options) (Model, error) {
	switch backend {
	case BackendFirestore:
		if options.CollectionID == "" {
			return nil, fmt.Errorf("model: firestore backend needs a collection id")
		}
		m, err := NewFirestoreModel(ctx, options.ProjectID, options.CollectionID)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendBolt:
		if options.BoltPath == "" {
			return nil, fmt.Errorf("model: bolt backend needs a file path")
		}
		m, err := NewBoltModel(options.BoltPath)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("model: unknown backend %q, want %s or %s", backend, BackendFirestore, BackendBolt)
	}
}
