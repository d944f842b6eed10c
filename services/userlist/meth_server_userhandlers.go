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
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/model"
	"github.com/labstack/echo/v4"
)

type listPage struct {
	Users         []model.User
	NextPageToken string
}

type formPage struct {
	Action string
	User   model.User
}

type viewPage struct {
	User model.User
}

func (s *Server) listUsers(c echo.Context) error {
	users, nextPageToken, err := s.model.List(c.Request().Context(), s.pageSize, c.QueryParam("pageToken"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "list", listPage{Users: users, NextPageToken: nextPageToken})
}

func (s *Server) addUserForm(c echo.Context) error {
	return c.Render(http.StatusOK, "form", formPage{Action: "Add"})
}

func (s *Server) addUser(c echo.Context) error {
	user, err := s.userFromForm(c)
	if err != nil {
		return err
	}
	created, err := s.model.Create(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/users/"+created.ID)
}

func (s *Server) viewUser(c echo.Context) error {
	user, err := s.model.Read(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "view", viewPage{User: user})
}

func (s *Server) editUserForm(c echo.Context) error {
	user, err := s.model.Read(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "form", formPage{Action: "Edit", User: user})
}

func (s *Server) editUser(c echo.Context) error {
	// fail on unknown ids before uploading anything
	if _, err := s.model.Read(c.Request().Context(), c.Param("user")); err != nil {
		return err
	}
	user, err := s.userFromForm(c)
	if err != nil {
		return err
	}
	updated, err := s.model.Update(c.Request().Context(), c.Param("user"), user)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/users/"+updated.ID)
}

func (s *Server) deleteUser(c echo.Context) error {
	if err := s.model.Delete(c.Request().Context(), c.Param("user")); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/users")
}

// userFromForm reads the form fields and uploads the optional image
func (s *Server) userFromForm(c echo.Context) (model.User, error) {
	user := model.User{
		Title:       s.sanitize(c.FormValue("title")),
		Description: s.sanitize(c.FormValue("description")),
		CreatedBy:   authenticatedUser(c),
	}
	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		if fileHeader.Filename == "" || fileHeader.Size == 0 {
			break
		}
		objectName, err := s.uploadImage(c.Request().Context(), fileHeader)
		if err != nil {
			return model.User{}, err
		}
		user.ImageObject = objectName
		user.ImageURL = publicURL(s.bucket.Name(), objectName)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return model.User{}, echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	return user, nil
}

const maxSanitizeRounds = 4

// sanitize returns plain text: markup is stripped, including markup hidden behind entities.
// The text is unescaped and sanitized again until it no longer changes.
func (s *Server) sanitize(input string) string {
	text := input
	for range maxSanitizeRounds {
		sanitized := s.policy.Sanitize(text)
		plain := html.UnescapeString(sanitized)
		if plain == text {
			return strings.TrimSpace(plain)
		}
		text = plain
	}
	// still decoding into markup, keep the escaped form
	return strings.TrimSpace(s.policy.Sanitize(text))
}

// authenticatedUser as asserted by Identity-Aware Proxy, empty when not behind IAP
func authenticatedUser(c echo.Context) string {
	email := c.Request().Header.Get("X-Goog-Authenticated-User-Email")
	return strings.TrimPrefix(email, "accounts.google.com:")
}

// handleError maps errors to status codes. JSON routes get a JSON body.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpError *echo.HTTPError
	switch {
	case errors.Is(err, model.ErrNotFound):
		code = http.StatusNotFound
		message = http.StatusText(code)
	case errors.As(err, &httpError):
		code = httpError.Code
		message = http.StatusText(code)
		if m, ok := httpError.Message.(string); ok && m != "" {
			message = m
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Log(logging.Entry{
			Severity:    "ERROR",
			Message:     "request_failed",
			Description: err.Error(),
		})
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else if strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/pubsub/") {
		err = c.JSON(code, map[string]string{"error": message})
	} else {
		err = c.String(code, message)
	}
	if err != nil {
		s.logger.Log(logging.Entry{
			Severity:    "ERROR",
			Message:     "error_response_failed",
			Description: err.Error(),
		})
	}
}
