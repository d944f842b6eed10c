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

/*
Package thumbnailer creates thumbnails of the images uploaded to a user list web application.

## What

- services/userlist: user list web application, its JSON API, image uploads to Cloud Storage
- services/makethumbnail: streams an uploaded image through a resize into thumb_<name>, on each Pub/Sub message naming it
- services/thumbnailworker: hosts makethumbnail on a Pub/Sub pull subscription

The root package exposes makethumbnail as a Cloud Functions background function, EntryPoint.
cmd/thumbnailer runs the web application, the worker, one shot runs and the infrastructure initialization.

## Flow

1. A user is added with an image, the image is written to the images bucket as <unix milliseconds>-<file name>
2. The object name is published to the thumbnail topic
3. makethumbnail writes thumb_<object name> in the same bucket, 200x200 max, JPEG
4. The user views show the thumbnail
*/
package thumbnailer
