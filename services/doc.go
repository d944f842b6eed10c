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
Package services groups the thumbnailer microservices

- makethumbnail: the thumbnail pipeline and its Cloud Functions host
- thumbnailworker: the same pipeline hosted on a Pub/Sub pull subscription
- userlist: the user list web application, its JSON API and the Pub/Sub push host of the pipeline

## Cloud Functions hosted services

### `Initialize` function

- Runs once per function instance on cold start
- Reads the instance settings, creates the clients, builds the orchestrator
- Keeps them in a `Global` value, `initFailed` is set when any step fails

### `EntryPoint` function

- Runs on every event
- Drops events older than the retry timeout and events received after a failed init: NO RETRY
- Returns the pipeline error to the platform so the event is redelivered: RETRY

## Long running services

- Get their dependencies through a `Config` value and stop when the context is done
- Share the makethumbnail `Process` function so every host maps outcomes to retries the same way

*/
package services
