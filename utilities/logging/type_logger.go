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

package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	cloudlogging "cloud.google.com/go/logging"
)

// Logger stamps entries with the emitting service identity before writing them
type Logger struct {
	MicroserviceName string
	InstanceName     string
	Environment      string
	sink             sink
}

type sink interface {
	write(entry Entry)
}

// stdSink one JSON line per entry, captured by Cloud Functions and Cloud Run from stdout
type stdSink struct {
	mu     sync.Mutex
	logger *log.Logger
}

func (s *stdSink) write(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Println(entry)
}

// cloudSink sends entries through the Cloud Logging API
type cloudSink struct {
	logger *cloudlogging.Logger
}

func (s *cloudSink) write(entry Entry) {
	severity := cloudlogging.ParseSeverity(entry.Severity)
	entry.Severity = ""
	s.logger.Log(cloudlogging.Entry{
		Severity: severity,
		Trace:    entry.Trace,
		Payload:  entry,
	})
}

// NewLogger returns a logger writing JSON lines to stdout
func NewLogger(microserviceName, instanceName, environment string) *Logger {
	return NewLoggerTo(os.Stdout, microserviceName, instanceName, environment)
}

// NewLoggerTo returns a logger writing JSON lines to w
func NewLoggerTo(w io.Writer, microserviceName, instanceName, environment string) *Logger {
	return &Logger{
		MicroserviceName: microserviceName,
		InstanceName:     instanceName,
		Environment:      environment,
		sink:             &stdSink{logger: log.New(w, "", 0)},
	}
}

// NewCloudLogger returns a logger writing to the Cloud Logging log logID of projectID.
// The returned close func flushes buffered entries.
func NewCloudLogger(ctx context.Context, projectID, logID, microserviceName, instanceName, environment string) (*Logger, func() error, error) {
	client, err := cloudlogging.NewClient(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.NewClient %v", err)
	}
	client.OnError = func(err error) {
		log.Printf("ERROR - cloud logging %v", err)
	}
	logger := &Logger{
		MicroserviceName: microserviceName,
		InstanceName:     instanceName,
		Environment:      environment,
		sink:             &cloudSink{logger: client.Logger(logID)},
	}
	return logger, client.Close, nil
}

// Log writes the entry, service identity fields are set when empty
func (l *Logger) Log(entry Entry) {
	if entry.MicroserviceName == "" {
		entry.MicroserviceName = l.MicroserviceName
	}
	if entry.InstanceName == "" {
		entry.InstanceName = l.InstanceName
	}
	if entry.Environment == "" {
		entry.Environment = l.Environment
	}
	l.sink.write(entry)
}
