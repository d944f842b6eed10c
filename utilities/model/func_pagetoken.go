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

package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

type pageCursor struct {
	After string `json:"after"`
}

// encodePageToken returns the token of the page starting after user id
func encodePageToken(afterID string) string {
	b, _ := json.Marshal(pageCursor{After: afterID})
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodePageToken returns the user id the page starts after, empty for the first page
func decodePageToken(pageToken string) (afterID string, err error) {
	if pageToken == "" {
		return "", nil
	}
	b, err := base64.RawURLEncoding.DecodeString(pageToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	var cursor pageCursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	if cursor.After == "" {
		return "", fmt.Errorf("%w: empty cursor", ErrInvalidPageToken)
	}
	return cursor.After, nil
}

func checkPageSize(pageSize int) error {
	if pageSize <= 0 {
		return fmt.Errorf("model: page size must be positive, got %d", pageSize)
	}
	return nil
}
