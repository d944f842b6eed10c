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

package solution

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
)

// ResolveProjectID keeps the configured project ID, else uses the one of the application default credentials
func (settings *Settings) ResolveProjectID(ctx context.Context) (err error) {
	if settings.Hosting.ProjectID != "" {
		return nil
	}
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return fmt.Errorf("google.FindDefaultCredentials %v", err)
	}
	if creds.ProjectID == "" {
		return fmt.Errorf("no project ID configured and none found in application default credentials")
	}
	settings.Hosting.ProjectID = creds.ProjectID
	return nil
}
