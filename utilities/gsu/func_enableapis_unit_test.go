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

package gsu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/serviceusage/v1"
)

// fakeServiceUsage reports an API enabled on the second poll after its activation
type fakeServiceUsage struct {
	mu       sync.Mutex
	enabled  map[string]bool
	polled   map[string]int
	enableOK bool
}

func (f *fakeServiceUsage) isEnabled(api string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled[api]
}

func (f *fakeServiceUsage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/services"):
		response := serviceusage.ListServicesResponse{}
		for name, on := range f.enabled {
			if on {
				response.Services = append(response.Services, &serviceusage.GoogleApiServiceusageV1Service{
					Name:  "projects/123456/services/" + name,
					State: "ENABLED",
				})
			}
		}
		json.NewEncoder(w).Encode(response)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":enable"):
		if !f.enableOK {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
			return
		}
		api := apiName(strings.TrimSuffix(path, ":enable"))
		f.polled[api] = 0
		json.NewEncoder(w).Encode(serviceusage.Operation{Name: "operations/enable-" + api})
	case r.Method == http.MethodGet:
		api := apiName(path)
		f.polled[api]++
		state := "DISABLED"
		if f.polled[api] > 1 {
			f.enabled[api] = true
			state = "ENABLED"
		}
		json.NewEncoder(w).Encode(serviceusage.GoogleApiServiceusageV1Service{Name: path, State: state})
	default:
		http.NotFound(w, r)
	}
}

func apiName(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func newTestService(t *testing.T, fake *fakeServiceUsage) *serviceusage.Service {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	service, err := serviceusage.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("serviceusage.NewService %v", err)
	}
	return service
}

func TestUnitEnableAPIs(t *testing.T) {
	var testCases = []struct {
		name          string
		alreadyActive []string
		enableOK      bool
		wantActivated []string
		wantErr       bool
	}{
		{
			name:          "allActive",
			alreadyActive: []string{"pubsub.googleapis.com", "storage-api.googleapis.com"},
			enableOK:      false,
			wantActivated: nil,
		},
		{
			name:          "activateMissing",
			alreadyActive: []string{"storage-api.googleapis.com"},
			enableOK:      true,
			wantActivated: []string{"pubsub.googleapis.com"},
		},
		{
			name:          "enableDenied",
			alreadyActive: []string{},
			enableOK:      false,
			wantErr:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeServiceUsage{enabled: make(map[string]bool), polled: make(map[string]int), enableOK: tc.enableOK}
			for _, api := range tc.alreadyActive {
				fake.enabled[api] = true
			}
			service := newTestService(t, fake)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			activated, err := EnableAPIs(ctx, service, "thumbnailer-dev",
				[]string{"pubsub.googleapis.com", "storage-api.googleapis.com"}, time.Millisecond)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want an error, got activated %v", activated)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !slices.Equal(activated, tc.wantActivated) {
				t.Errorf("want activated %v got %v", tc.wantActivated, activated)
			}
			for _, api := range tc.wantActivated {
				if !fake.isEnabled(api) {
					t.Errorf("%s not enabled on the fake", api)
				}
			}
		})
	}
}

func TestUnitEnableAPIsCanceled(t *testing.T) {
	fake := &fakeServiceUsage{enabled: make(map[string]bool), polled: make(map[string]int), enableOK: true}
	service := newTestService(t, fake)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EnableAPIs(ctx, service, "thumbnailer-dev", []string{"pubsub.googleapis.com"}, time.Hour); err == nil {
		t.Fatal("want an error on a canceled context")
	}
}

func TestUnitRequiredAPIs(t *testing.T) {
	apis := RequiredAPIs()
	for _, want := range []string{"pubsub.googleapis.com", "firestore.googleapis.com", "storage-api.googleapis.com"} {
		if !slices.Contains(apis, want) {
			t.Errorf("%s missing from %v", want, apis)
		}
	}
}
