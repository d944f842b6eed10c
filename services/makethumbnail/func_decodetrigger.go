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

import (
	"encoding/base64"
	"time"
	"unicode/utf8"
)

// TriggerEvent is the payload of a Pub/Sub event.
// Data is kept base64 encoded so that a malformed payload reaches the decoder instead of failing the host unmarshalling.
type TriggerEvent struct {
	Data        string            `json:"data,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId,omitempty"`
	PublishTime time.Time         `json:"publishTime,omitempty"`
}

// NewTriggerEvent builds an event from raw, not yet encoded, message data
func NewTriggerEvent(data []byte, messageID string, publishTime time.Time) TriggerEvent {
	return TriggerEvent{
		Data:        base64.StdEncoding.EncodeToString(data),
		MessageID:   messageID,
		PublishTime: publishTime,
	}
}

// DecodeTrigger returns the object name carried by the event.
// ok is false when data is absent, empty, not standard base64 or not UTF-8 text: nothing to do, not an error.
func DecodeTrigger(event TriggerEvent) (objectName string, ok bool) {
	if event.Data == "" {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(event.Data)
	if err != nil {
		return "", false
	}
	if len(decoded) == 0 || !utf8.Valid(decoded) {
		return "", false
	}
	return string(decoded), true
}
