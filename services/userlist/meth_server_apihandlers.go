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
	"net/http"

	"github.com/BrunoReboul/thumbnailer/utilities/model"
	"github.com/labstack/echo/v4"
)

type apiUser struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type apiList struct {
	Items         []model.User `json:"items"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

func (s *Server) apiListUsers(c echo.Context) error {
	users, nextPageToken, err := s.model.List(c.Request().Context(), s.pageSize, c.QueryParam("pageToken"))
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, apiList{Items: users, NextPageToken: nextPageToken})
}

func (s *Server) apiCreateUser(c echo.Context) error {
	user, err := s.userFromJSON(c)
	if err != nil {
		return err
	}
	created, err := s.model.Create(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (s *Server) apiReadUser(c echo.Context) error {
	user, err := s.model.Read(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) apiUpdateUser(c echo.Context) error {
	user, err := s.userFromJSON(c)
	if err != nil {
		return err
	}
	updated, err := s.model.Update(c.Request().Context(), c.Param("user"), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) apiDeleteUser(c echo.Context) error {
	if err := s.model.Delete(c.Request().Context(), c.Param("user")); err != nil {
		return err
	}
	return c.String(http.StatusOK, "OK")
}

func (s *Server) userFromJSON(c echo.Context) (model.User, error) {
	var body apiUser
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return model.User{}, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body").SetInternal(err)
	}
	return model.User{
		Title:       s.sanitize(body.Title),
		Description: s.sanitize(body.Description),
		CreatedBy:   authenticatedUser(c),
	}, nil
}
