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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/BrunoReboul/thumbnailer/utilities/gcs"
	"github.com/BrunoReboul/thumbnailer/utilities/gps"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/BrunoReboul/thumbnailer/utilities/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultPageSize = 10
	maxImageBytes   = 5 << 20
	shutdownTimeout = 10 * time.Second
)

// Config dependencies of the server. Bucket, Publisher and Orchestrator are optional.
type Config struct {
	Model        model.Model
	Bucket       gcs.Bucket
	Publisher    gps.Publisher
	Orchestrator *makethumbnail.Orchestrator
	Logger       *logging.Logger
	PageSize     int
	// RetryTimeOutSeconds pushed messages older than this are acknowledged without processing, 0 disables the check
	RetryTimeOutSeconds int64
}

// Server user list HTTP server
type Server struct {
	echo         *echo.Echo
	model        model.Model
	bucket       gcs.Bucket
	publisher    gps.Publisher
	orchestrator *makethumbnail.Orchestrator
	logger       *logging.Logger
	pageSize     int
	policy       *bluemonday.Policy
	now          func() time.Time

	retryTimeOutSeconds int64
}

// NewServer builds the routes
func NewServer(config Config) (*Server, error) {
	if config.Model == nil {
		return nil, errors.New("userlist: a model is required")
	}
	s := &Server{
		echo:         echo.New(),
		model:        config.Model,
		bucket:       config.Bucket,
		publisher:    config.Publisher,
		orchestrator: config.Orchestrator,
		logger:       config.Logger,
		pageSize:     config.PageSize,
		policy:       bluemonday.StrictPolicy(),
		now:          time.Now,

		retryTimeOutSeconds: config.RetryTimeOutSeconds,
	}
	if s.logger == nil {
		s.logger = logging.NewLogger("userlist", "", "")
	}
	if s.pageSize <= 0 {
		s.pageSize = defaultPageSize
	}
	bucketName := ""
	if s.bucket != nil {
		bucketName = s.bucket.Name()
	}
	renderer, err := newRenderer(bucketName)
	if err != nil {
		return nil, err
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Renderer = renderer
	s.echo.HTTPErrorHandler = s.handleError
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.accessLog())
	s.routes()
	return s, nil
}

// ServeHTTP makes the server an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on address until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context, address string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.echo.Start(address)
	}()
	s.logger.Log(logging.Entry{
		Severity:    "NOTICE",
		Message:     "listening",
		Description: address,
	})
	select {
	case err := <-errc:
		return fmt.Errorf("echo.Start %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("echo.Shutdown %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/users")
	})

	users := s.echo.Group("/users")
	users.GET("", s.listUsers)
	users.GET("/add", s.addUserForm)
	users.POST("/add", s.addUser)
	users.GET("/:user", s.viewUser)
	users.GET("/:user/edit", s.editUserForm)
	users.POST("/:user/edit", s.editUser)
	users.GET("/:user/delete", s.deleteUser)

	api := s.echo.Group("/api/users")
	api.GET("", s.apiListUsers)
	api.POST("", s.apiCreateUser)
	api.GET("/:user", s.apiReadUser)
	api.PUT("/:user", s.apiUpdateUser)
	api.DELETE("/:user", s.apiDeleteUser)

	if s.orchestrator != nil {
		s.echo.POST("/pubsub/push", s.pubsubPush)
	}
}

func (s *Server) accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			severity := "INFO"
			if v.Status >= http.StatusInternalServerError {
				severity = "ERROR"
			}
			s.logger.Log(logging.Entry{
				Severity:       severity,
				Message:        "request",
				Description:    fmt.Sprintf("%s %s %d", v.Method, v.URI, v.Status),
				LatencySeconds: v.Latency.Seconds(),
			})
			return nil
		},
	})
}
