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

import "errors"

var (
	// ErrSourceRead the source object is missing or cannot be read
	ErrSourceRead = errors.New("source read failed")
	// ErrTransform the source bytes are not a supported image
	ErrTransform = errors.New("transform failed")
	// ErrDestinationWrite the thumbnail cannot be written
	ErrDestinationWrite = errors.New("destination write failed")
)

func isClassified(err error) bool {
	return errors.Is(err, ErrSourceRead) || errors.Is(err, ErrTransform) || errors.Is(err, ErrDestinationWrite)
}
