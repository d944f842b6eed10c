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

package userlist

import (
	"fmt"
	"net/http"

	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcf"
	"github.com/BrunoReboul/thumbnailer/utilities/gps"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/labstack/echo/v4"
)

// pubsubPush runs the thumbnail pipeline for one pushed message.
// 204 acknowledges, any other status makes Pub/Sub redeliver.
func (s *Server) pubsubPush(c echo.Context) error {
	var pushRequest gps.PushRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &pushRequest); err != nil {
		// malformed bodies are acknowledged
		s.logger.Log(logging.Entry{
			Severity:    "WARNING",
			Message:     "noretry",
			Description: "malformed push request " + err.Error(),
		})
		return c.NoContent(http.StatusNoContent) // NO RETRY
	}
	now := s.now()
	publishTime := pushRequest.Message.PublishTime
	if s.retryTimeOutSeconds > 0 && gcf.IsExpired(publishTime, now, s.retryTimeOutSeconds) {
		s.logger.Log(logging.Entry{
			Severity:                   "CRITICAL",
			Message:                    "noretry",
			Description:                fmt.Sprintf("too many retries for expired event, subscription %s", pushRequest.Subscription),
			TriggeringPubsubID:         pushRequest.Message.MessageID,
			TriggeringPubsubTimestamp:  &publishTime,
			TriggeringPubsubAgeSeconds: now.Sub(publishTime).Seconds(),
			Now:                        &now,
		})
		return c.NoContent(http.StatusNoContent) // NO MORE RETRY
	}
	event := makethumbnail.TriggerEvent{
		Data:        pushRequest.Message.Data,
		Attributes:  pushRequest.Message.Attributes,
		MessageID:   pushRequest.Message.MessageID,
		PublishTime: pushRequest.Message.PublishTime,
	}
	if err := makethumbnail.Process(c.Request().Context(), s.orchestrator, event); err != nil {
		return err // RETRY
	}
	return c.NoContent(http.StatusNoContent)
}
