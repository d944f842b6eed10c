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
	"path/filepath"
	"testing"
)

func TestUnitBoltModel(t *testing.T) {
	m, err := NewBoltModel(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("NewBoltModel %v", err)
	}
	defer m.Close()
	testModelContract(t, m)
}

func TestUnitBoltModelReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	m, err := NewBoltModel(path)
	if err != nil {
		t.Fatalf("NewBoltModel %v", err)
	}
	created, err := m.Create(context.Background(), User{Title: "persisted"})
	if err != nil {
		t.Fatalf("Create %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close %v", err)
	}

	m, err = NewBoltModel(path)
	if err != nil {
		t.Fatalf("NewBoltModel reopen %v", err)
	}
	defer m.Close()
	read, err := m.Read(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Read %v", err)
	}
	if read.Title != "persisted" {
		t.Errorf("want persisted got %s", read.Title)
	}
}

func TestUnitNew(t *testing.T) {
	var testCases = []struct {
		name    string
		backend string
		options Options
		wantErr bool
	}{
		{name: "bolt", backend: BackendBolt, options: Options{BoltPath: filepath.Join(t.TempDir(), "users.db")}},
		{name: "boltWithoutPath", backend: BackendBolt, wantErr: true},
		{name: "firestoreWithoutCollection", backend: BackendFirestore, wantErr: true},
		{name: "datastore", backend: "datastore", wantErr: true},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(context.Background(), tc.backend, tc.options)
			if tc.wantErr {
				if err == nil {
					t.Errorf("want an error got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New %v", err)
			}
			m.Close()
		})
	}
}
