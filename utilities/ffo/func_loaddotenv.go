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

package ffo

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Variables already set are kept, missing files are ignored.
func LoadDotEnv(paths ...string) (err error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		err = godotenv.Load(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// OverrideString sets *target to the value of the environment variable envVarName when it is set and not empty
func OverrideString(target *string, envVarName string) {
	if value := os.Getenv(envVarName); value != "" {
		*target = value
	}
}

// OverrideInt64 sets *target to the environment variable envVarName value parsed as int64
func OverrideInt64(target *int64, envVarName string) (err error) {
	value := os.Getenv(envVarName)
	if value == "" {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	*target = i
	return nil
}
