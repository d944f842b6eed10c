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

package gfs

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/BrunoReboul/thumbnailer/utilities/erm"
	"github.com/BrunoReboul/thumbnailer/utilities/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GetDoc reads a document with retries.
// found is false with a nil error when the document does not exist.
func GetDoc(ctx context.Context,
	firestoreClient *firestore.Client,
	documentPath string,
	retriesNumber int) (documentSnap *firestore.DocumentSnapshot, found bool, err error) {
	for i := 0; i < retriesNumber; i++ {
		documentSnap, err = firestoreClient.Doc(documentPath).Get(ctx)
		if err == nil {
			return documentSnap, true, nil
		}
		// Retry are for transient, not for doc not found
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		if erm.IsNotTransientElseWait(err, time.Duration(i)*100*time.Millisecond) {
			return nil, false, fmt.Errorf("firestoreClient.Doc(%s).Get %w", documentPath, err)
		}
		log.Println(logging.Entry{
			Severity:    "WARNING",
			Message:     "redo_on_transient",
			Description: fmt.Sprintf("iteration %d firestoreClient.Doc(%s).Get %v", i, documentPath, err),
		})
	}
	return nil, false, fmt.Errorf("firestoreClient.Doc(%s).Get failed after %d retries %w", documentPath, retriesNumber, err)
}
