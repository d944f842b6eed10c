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

// ThumbnailPrefix prepended to the source object name to name the thumbnail
const ThumbnailPrefix = "thumb_"

// ObjectDescriptor identifies a blob
type ObjectDescriptor struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// Locate returns the source object and its thumbnail, in the same bucket
func Locate(objectName string, bucketName string) (source ObjectDescriptor, destination ObjectDescriptor) {
	source = ObjectDescriptor{Bucket: bucketName, Name: objectName}
	destination = ObjectDescriptor{Bucket: bucketName, Name: ThumbnailPrefix + objectName}
	return source, destination
}
