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

// Command thumbnailer runs the user list web application, the thumbnail worker and their tooling
package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/BrunoReboul/thumbnailer/utilities/ffo"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"github.com/spf13/cobra"
)

// app state shared by the commands
type app struct {
	settingsPath string
	envFile      string
	cloudLogging bool
	closers      []func() error
}

func (a *app) onClose(closer func() error) {
	a.closers = append(a.closers, closer)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			fmt.Fprintf(os.Stderr, "close: %v\n", err)
		}
	}
	a.closers = nil
}

// newLogger writes JSON lines to stdout, or to Cloud Logging when --cloud-logging is set
func (a *app) newLogger(ctx context.Context, projectID, serviceName, instanceName, environment string) (*logging.Logger, error) {
	if !a.cloudLogging {
		return logging.NewLogger(serviceName, instanceName, environment), nil
	}
	logger, closeLogger, err := logging.NewCloudLogger(ctx, projectID, serviceName, serviceName, instanceName, environment)
	if err != nil {
		return nil, err
	}
	a.onClose(closeLogger)
	return logger, nil
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "thumbnailer",
		Short:         "User list web application with image thumbnails",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ffo.LoadDotEnv(a.envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.settingsPath, "settings", "settings.yaml", "instance settings YAML file, optional")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading settings, optional")
	rootCmd.PersistentFlags().BoolVar(&a.cloudLogging, "cloud-logging", false, "send logs to Cloud Logging instead of stdout")

	rootCmd.AddCommand(
		newServeCmd(a),
		newWorkerCmd(a),
		newProcessCmd(a),
		newPublishCmd(a),
		newInitCmd(a),
	)
	return rootCmd, a
}

// execute runs the command then the closers, whatever the command outcome
func execute(ctx context.Context, rootCmd *cobra.Command, a *app) error {
	defer a.close()
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCmd, a := newRootCmd()
	if err := execute(ctx, rootCmd, a); err != nil {
		fmt.Fprintf(os.Stderr, "thumbnailer: %v\n", err)
		stop()
		os.Exit(1)
	}
}
