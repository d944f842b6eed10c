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

package erm

import (
	"log"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var transientErrors = []string{"500", "501", "502", "503", "504", "505", "506", "507", "508", "510", "511"}

// IsTransient true for gRPC Unavailable, DeadlineExceeded, Internal, Aborted and ResourceExhausted, and for HTTP 5xx in the error message
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Internal, codes.Aborted, codes.ResourceExhausted:
			return true
		case codes.Unknown:
		default:
			return false
		}
	}
	erroMessage := err.Error()
	for _, transientError := range transientErrors {
		if strings.Contains(erroMessage, transientError) {
			return true
		}
	}
	return false
}

// IsNotTransientElseWait check is the error is transient and wait if it is
func IsNotTransientElseWait(err error, wait time.Duration) (isNotTransient bool) {
	if !IsTransient(err) {
		return true
	}
	log.Printf("Transient error, wait %v and retry %v", wait, err)
	time.Sleep(wait)
	return false
}
