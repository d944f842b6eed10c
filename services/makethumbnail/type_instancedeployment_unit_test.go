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

package makethumbnail

import (
	"os"
	"path/filepath"
	"testing"
)

const testSettingsYAML = `
core:
  environmentName: prd
  instanceName: makethumbnail-prd
  serviceName: makethumbnail
  solutionSettings:
    hosting:
      projectIDs:
        dev: thumbnailer-dev
        prd: thumbnailer-prd
      gcs:
        buckets:
          images:
            names:
              dev: images-dev
              prd: images-prd
settings:
  service:
    gcf:
      retryTimeOutSeconds: 300
    thumbnail:
      width: 320
      height: 240
      fitMode: cover
      quality: 80
      outputContentType: image/jpeg
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("os.WriteFile %v", err)
	}
	return path
}

func TestUnitLoadInstanceDeployment(t *testing.T) {
	var testCases = []struct {
		name            string
		settings        string
		env             map[string]string
		wantErr         bool
		wantBucket      string
		wantProject     string
		wantRetry       int64
		wantWidth       int
		wantFitMode     FitMode
		wantEnvironment string
	}{
		{
			name:            "fromFile",
			settings:        testSettingsYAML,
			wantBucket:      "images-prd",
			wantProject:     "thumbnailer-prd",
			wantRetry:       300,
			wantWidth:       320,
			wantFitMode:     FitCover,
			wantEnvironment: "prd",
		},
		{
			name:            "environmentSwitch",
			settings:        testSettingsYAML,
			env:             map[string]string{"ENVIRONMENT": "dev"},
			wantBucket:      "images-dev",
			wantProject:     "thumbnailer-dev",
			wantRetry:       300,
			wantWidth:       320,
			wantFitMode:     FitCover,
			wantEnvironment: "dev",
		},
		{
			name:            "envOnly",
			env:             map[string]string{"BUCKETNAME": "photos", "RETRYTIMEOUTSECONDS": "60"},
			wantBucket:      "photos",
			wantRetry:       60,
			wantWidth:       200,
			wantFitMode:     FitInside,
			wantEnvironment: "dev",
		},
		{
			name:     "noBucket",
			wantErr:  true,
			settings: "core:\n  environmentName: dev\n",
		},
		{
			name:     "badRetry",
			env:      map[string]string{"BUCKETNAME": "photos", "RETRYTIMEOUTSECONDS": "ten"},
			wantErr:  true,
			settings: "",
		},
		{
			name:     "unknownField",
			settings: "core:\n  unexpected: true\n",
			wantErr:  true,
		},
		{
			name:     "invalidThumbnail",
			settings: "settings:\n  service:\n    thumbnail:\n      quality: 0\n",
			env:      map[string]string{"BUCKETNAME": "photos"},
			wantErr:  true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"ENVIRONMENT", "PROJECT_ID", "BUCKETNAME", "RETRYTIMEOUTSECONDS"} {
				t.Setenv(key, tc.env[key])
			}
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tc.settings != "" {
				path = writeSettings(t, tc.settings)
			}
			instanceDeployment, err := LoadInstanceDeployment(path)
			if tc.wantErr {
				if err == nil {
					t.Errorf("want an error got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadInstanceDeployment %v", err)
			}
			hosting := instanceDeployment.Core.SolutionSettings.Hosting
			if hosting.GCS.Buckets.Images.Name != tc.wantBucket {
				t.Errorf("want bucket %s got %s", tc.wantBucket, hosting.GCS.Buckets.Images.Name)
			}
			if hosting.ProjectID != tc.wantProject {
				t.Errorf("want project %s got %s", tc.wantProject, hosting.ProjectID)
			}
			if instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds != tc.wantRetry {
				t.Errorf("want retry %d got %d", tc.wantRetry, instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds)
			}
			if instanceDeployment.Settings.Service.Thumbnail.Width != tc.wantWidth {
				t.Errorf("want width %d got %d", tc.wantWidth, instanceDeployment.Settings.Service.Thumbnail.Width)
			}
			if instanceDeployment.Settings.Service.Thumbnail.FitMode != tc.wantFitMode {
				t.Errorf("want fit mode %s got %s", tc.wantFitMode, instanceDeployment.Settings.Service.Thumbnail.FitMode)
			}
			if instanceDeployment.Core.EnvironmentName != tc.wantEnvironment {
				t.Errorf("want environment %s got %s", tc.wantEnvironment, instanceDeployment.Core.EnvironmentName)
			}
		})
	}
}
