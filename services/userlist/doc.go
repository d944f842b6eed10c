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
Package userlist serves the user list web application and its JSON API.

## HTML

- GET / redirects to /users
- GET /users lists users, ten per page, next page with the pageToken query parameter
- GET /users/add and POST /users/add
- GET /users/:user
- GET /users/:user/edit and POST /users/:user/edit
- GET /users/:user/delete

## JSON API

- GET /api/users, POST /api/users
- GET /api/users/:user, PUT /api/users/:user, DELETE /api/users/:user

## Images

Forms accept an optional image. It is written to the images bucket as <unix milliseconds>-<file name>
and its name is published to the thumbnail topic, so that the thumbnail pipeline creates thumb_<name>.

## Pub/Sub push

When an orchestrator is configured, POST /pubsub/push runs the thumbnail pipeline for a push subscription.
A non 2xx status makes Pub/Sub redeliver.
*/
package userlist
