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

package userlist

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BrunoReboul/thumbnailer/utilities/ffo"
	"github.com/BrunoReboul/thumbnailer/utilities/model"
	"github.com/BrunoReboul/thumbnailer/utilities/solution"
	"github.com/BrunoReboul/thumbnailer/utilities/validater"
)

const defaultServiceName = "userlist"

// InstanceDeployment settings of one userlist instance
type InstanceDeployment struct {
	Core struct {
		EnvironmentName  string            `yaml:"environmentName"`
		InstanceName     string            `yaml:"instanceName"`
		ServiceName      string            `yaml:"serviceName"`
		SolutionSettings solution.Settings `yaml:"solutionSettings"`
	} `yaml:"core"`
	Settings struct {
		Service struct {
			DataBackend string `yaml:"dataBackend" valid:"isOneOf:firestore|bolt"`
			BoltPath    string `yaml:"boltPath"`
			Port        string `yaml:"port" valid:"isNotZeroValue"`
			PageSize    int    `yaml:"pageSize" valid:"isPositive"`
		} `yaml:"service"`
	} `yaml:"settings"`
}

// NewInstanceDeployment returns an instance deployment with defaults set
func NewInstanceDeployment() *InstanceDeployment {
	var instanceDeployment InstanceDeployment
	instanceDeployment.Core.EnvironmentName = solution.DevelopmentEnvironmentName
	instanceDeployment.Core.ServiceName = defaultServiceName
	instanceDeployment.Core.InstanceName = defaultServiceName
	instanceDeployment.Settings.Service.DataBackend = model.BackendBolt
	instanceDeployment.Settings.Service.BoltPath = "users.db"
	instanceDeployment.Settings.Service.Port = "8080"
	instanceDeployment.Settings.Service.PageSize = defaultPageSize
	return &instanceDeployment
}

// LoadInstanceDeployment reads the YAML settings file when present,
// then applies environment variables overrides, situates and validates.
// Overrides: ENVIRONMENT, PROJECT_ID, BUCKETNAME, DATA_BACKEND, BOLT_PATH, PORT
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
	service := &instanceDeployment.Settings.Service
	ffo.OverrideString(&service.DataBackend, "DATA_BACKEND")
	ffo.OverrideString(&service.BoltPath, "BOLT_PATH")
	ffo.OverrideString(&service.Port, "PORT")

	err = validater.ValidateStruct(instanceDeployment.Settings, "settings")
	if err != nil {
		return nil, err
	}
	if service.DataBackend == model.BackendBolt && service.BoltPath == "" {
		return nil, errors.New("boltPath is required with the bolt data backend")
	}
	return instanceDeployment, nil
}

// ModelOptions backend options from the settings
func (instanceDeployment *InstanceDeployment) ModelOptions() model.Options {
	return model.Options{
		ProjectID:    instanceDeployment.Core.SolutionSettings.Hosting.ProjectID,
		CollectionID: instanceDeployment.Core.SolutionSettings.Hosting.FireStore.CollectionIDs.Users,
		BoltPath:     instanceDeployment.Settings.Service.BoltPath,
	}
}
