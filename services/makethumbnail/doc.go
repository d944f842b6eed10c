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
Package makethumbnail creates a thumbnail of an image stored in Cloud Storage each time a Pub/Sub message names it.

## What

The message data is the base64 encoded name of an object of the images bucket.
The object is streamed through a resize stage into a new object of the same bucket named thumb_<name>:

- fit inside 200x200 by default, aspect ratio preserved
- images already smaller than the box are not enlarged
- encoded as image/jpeg, quality 90
- uploaded in a single request, no resumable session

Messages without a usable object name are acknowledged without any storage call.
Failures are returned to the host so that Pub/Sub redelivers until retryTimeOutSeconds is reached.

## Hosts

- Cloud Functions background function, EntryPoint in the module root package
- Pub/Sub pull worker, services/thumbnailworker
- Pub/Sub push endpoint, services/userlist
*/
package makethumbnail
