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
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/str"
	"google.golang.org/api/serviceusage/v1"
)

// EnableAPIs activates the APIs not yet enabled on the project and waits for them to be active
func EnableAPIs(ctx context.Context, service *serviceusage.Service, projectID string, apiList []string, pollInterval time.Duration) (activated []string, err error) {
	parent := fmt.Sprintf("projects/%s", projectID)
	activeAPIs := make([]string, 0)
	err = service.Services.List(parent).Filter("state:ENABLED").PageSize(200).Pages(ctx,
		func(response *serviceusage.ListServicesResponse) error {
			for _, s := range response.Services {
				parts := strings.Split(s.Name, "/")
				activeAPIs = append(activeAPIs, parts[len(parts)-1])
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("services.List %s %w", parent, err)
	}

	for _, apiName := range apiList {
		if str.Find(activeAPIs, apiName) {
			log.Println(logging.Entry{
				Message:     "api_already_active",
				Description: apiName,
			})
			continue
		}
		if err = activateAPI(ctx, service.Services, projectID, apiName, pollInterval); err != nil {
			return activated, err
		}
		activated = append(activated, apiName)
	}
	return activated, nil
}

func activateAPI(ctx context.Context, services *serviceusage.ServicesService, projectID, apiName string, pollInterval time.Duration) error {
	name := fmt.Sprintf("projects/%s/services/%s", projectID, apiName)
	operation, err := services.Enable(name, &serviceusage.EnableServiceRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("services.Enable %s %w", apiName, err)
	}
	log.Println(logging.Entry{
		Message:     "api_activation_started",
		Description: fmt.Sprintf("%s operation %s", apiName, operation.Name),
	})

	// operations.Get returns notFound on enable operations, poll the service state instead
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s %w", apiName, ctx.Err())
		case <-ticker.C:
		}
		s, err := services.Get(name).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("services.Get %s %w", apiName, err)
		}
		if s.State == "ENABLED" {
			log.Println(logging.Entry{
				Message:     "api_active",
				Description: apiName,
			})
			return nil
		}
	}
}
