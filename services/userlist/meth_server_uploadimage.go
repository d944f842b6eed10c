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
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/labstack/echo/v4"
)

// uploadImage writes the image to the bucket then asks for its thumbnail.
// A publish failure is logged, the user keeps the full size image.
func (s *Server) uploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (objectName string, err error) {
	if s.bucket == nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "image uploads are disabled")
	}
	if fileHeader.Size > maxImageBytes {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("image larger than %d bytes", maxImageBytes))
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", echo.NewHTTPError(http.StatusBadRequest, "only images can be uploaded")
	}
	objectName = fmt.Sprintf("%d-%s", s.now().UnixMilli(), filepath.Base(fileHeader.Filename))

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("fileHeader.Open %w", err)
	}
	defer file.Close()

	writeCtx, abortWrite := context.WithCancel(ctx)
	defer abortWrite()
	writer := s.bucket.NewWriter(writeCtx, objectName, contentType)
	if _, err = io.Copy(writer, io.LimitReader(file, maxImageBytes)); err != nil {
		abortWrite()
		writer.Close()
		return "", fmt.Errorf("upload gs://%s/%s %w", s.bucket.Name(), objectName, err)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("upload gs://%s/%s %w", s.bucket.Name(), objectName, err)
	}

	if s.publisher == nil {
		return objectName, nil
	}
	id, err := s.publisher.Publish(ctx, []byte(objectName), map[string]string{"origin": "userlist"})
	if err != nil {
		s.logger.Log(logging.Entry{
			Severity:     "WARNING",
			Message:      "thumbnail_not_requested",
			Description:  err.Error(),
			SourceBucket: s.bucket.Name(),
			SourceObject: objectName,
		})
		return objectName, nil
	}
	s.logger.Log(logging.Entry{
		Message:            "thumbnail_requested",
		TriggeringPubsubID: id,
		SourceBucket:       s.bucket.Name(),
		SourceObject:       objectName,
	})
	return objectName, nil
}
