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
	"errors"
	"fmt"
	"io/fs"

	"github.com/BrunoReboul/thumbnailer/utilities/ffo"
	"github.com/BrunoReboul/thumbnailer/utilities/solution"
	"github.com/BrunoReboul/thumbnailer/utilities/validater"
)

const (
	defaultServiceName         = "makethumbnail"
	defaultRetryTimeOutSeconds = 600
)

// InstanceDeployment settings of one makethumbnail instance
type InstanceDeployment struct {
	Core struct {
		EnvironmentName  string            `yaml:"environmentName"`
		InstanceName     string            `yaml:"instanceName"`
		ServiceName      string            `yaml:"serviceName"`
		SolutionSettings solution.Settings `yaml:"solutionSettings"`
	} `yaml:"core"`
	Settings struct {
		Service struct {
			GCF struct {
				RetryTimeOutSeconds int64 `yaml:"retryTimeOutSeconds" valid:"isPositive"`
			} `yaml:"gcf"`
			Thumbnail TransformSpec `yaml:"thumbnail"`
		} `yaml:"service"`
	} `yaml:"settings"`
}

// NewInstanceDeployment returns an instance deployment with defaults set
func NewInstanceDeployment() *InstanceDeployment {
	var instanceDeployment InstanceDeployment
	instanceDeployment.Core.EnvironmentName = solution.DevelopmentEnvironmentName
	instanceDeployment.Core.ServiceName = defaultServiceName
	instanceDeployment.Core.InstanceName = defaultServiceName
	instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds = defaultRetryTimeOutSeconds
	instanceDeployment.Settings.Service.Thumbnail = DefaultTransformSpec()
	return &instanceDeployment
}

// LoadInstanceDeployment reads the YAML settings file when present,
// then applies environment variables overrides, situates and validates.
// Overrides: ENVIRONMENT, PROJECT_ID, BUCKETNAME, RETRYTIMEOUTSECONDS
func LoadInstanceDeployment(path string) (instanceDeployment *InstanceDeployment, err error) {
	instanceDeployment = NewInstanceDeployment()
	err = ffo.ReadUnmarshalYAML(path, instanceDeployment)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ReadUnmarshalYAML %s %v", path, err)
	}
	ffo.OverrideString(&instanceDeployment.Core.EnvironmentName, "ENVIRONMENT")
	instanceDeployment.Core.SolutionSettings.Situate(instanceDeployment.Core.EnvironmentName)

	hosting := &instanceDeployment.Core.SolutionSettings.Hosting
	ffo.OverrideString(&hosting.ProjectID, "PROJECT_ID")
	ffo.OverrideString(&hosting.GCS.Buckets.Images.Name, "BUCKETNAME")
	err = ffo.OverrideInt64(&instanceDeployment.Settings.Service.GCF.RetryTimeOutSeconds, "RETRYTIMEOUTSECONDS")
	if err != nil {
		return nil, fmt.Errorf("RETRYTIMEOUTSECONDS %v", err)
	}

	if hosting.GCS.Buckets.Images.Name == "" {
		return nil, errors.New("images bucket name is not set, use BUCKETNAME or solutionSettings hosting gcs buckets images")
	}
	err = validater.ValidateStruct(instanceDeployment.Settings, "settings")
	if err != nil {
		return nil, err
	}
	return instanceDeployment, nil
}
