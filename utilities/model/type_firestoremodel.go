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
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/BrunoReboul/thumbnailer/utilities/erm"
	"github.com/BrunoReboul/thumbnailer/utilities/gfs"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultRetriesNumber = 5

// FirestoreModel stores users as documents of a Firestore collection
type FirestoreModel struct {
	client        *firestore.Client
	collectionID  string
	retriesNumber int
}

// NewFirestoreModel returns a model on the collectionID collection of projectID
func NewFirestoreModel(ctx context.Context, projectID string, collectionID string) (*FirestoreModel, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient %w", err)
	}
	return NewFirestoreModelWithClient(client, collectionID), nil
}

// NewFirestoreModelWithClient returns a model using an existing client, closed by Close
func NewFirestoreModelWithClient(client *firestore.Client, collectionID string) *FirestoreModel {
	return &FirestoreModel{
		client:        client,
		collectionID:  collectionID,
		retriesNumber: defaultRetriesNumber,
	}
}

func (m *FirestoreModel) documentPath(id string) string {
	return fmt.Sprintf("%s/%s", m.collectionID, id)
}

// Create stores a new document, failing if the generated id already exists
func (m *FirestoreModel) Create(ctx context.Context, user User) (User, error) {
	user.ID = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := m.withRetries(func() error {
		_, err := m.client.Collection(m.collectionID).Doc(user.ID).Create(ctx, user)
		return err
	})
	if err != nil {
		return User{}, fmt.Errorf("Doc(%s).Create %w", m.documentPath(user.ID), err)
	}
	return user, nil
}

// Read a user document
func (m *FirestoreModel) Read(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("empty user id %w", ErrNotFound)
	}
	documentSnap, found, err := gfs.GetDoc(ctx, m.client, m.documentPath(id), m.retriesNumber)
	if err != nil {
		return User{}, err
	}
	if !found {
		return User{}, fmt.Errorf("user %s %w", id, ErrNotFound)
	}
	var user User
	if err := documentSnap.DataTo(&user); err != nil {
		return User{}, fmt.Errorf("DataTo %s %w", id, err)
	}
	user.ID = documentSnap.Ref.ID
	return user, nil
}

// Update merges the update into the stored document
func (m *FirestoreModel) Update(ctx context.Context, id string, update User) (User, error) {
	stored, err := m.Read(ctx, id)
	if err != nil {
		return User{}, err
	}
	user := Merge(stored, update)
	err = m.withRetries(func() error {
		_, err := m.client.Collection(m.collectionID).Doc(id).Set(ctx, user)
		return err
	})
	if err != nil {
		return User{}, fmt.Errorf("Doc(%s).Set %w", m.documentPath(id), err)
	}
	return user, nil
}

// Delete a user document
func (m *FirestoreModel) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("empty user id %w", ErrNotFound)
	}
	err := m.withRetries(func() error {
		_, err := m.client.Collection(m.collectionID).Doc(id).Delete(ctx, firestore.Exists)
		return err
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("user %s %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Doc(%s).Delete %w", m.documentPath(id), err)
	}
	return nil
}

// List user documents ordered by document id
func (m *FirestoreModel) List(ctx context.Context, pageSize int, pageToken string) (users []User, nextPageToken string, err error) {
	if err := checkPageSize(pageSize); err != nil {
		return nil, "", err
	}
	afterID, err := decodePageToken(pageToken)
	if err != nil {
		return nil, "", err
	}
	query := m.client.Collection(m.collectionID).OrderBy(firestore.DocumentID, firestore.Asc).Limit(pageSize + 1)
	if afterID != "" {
		query = query.StartAfter(afterID)
	}
	documents := query.Documents(ctx)
	defer documents.Stop()
	for {
		documentSnap, err := documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("documents.Next %w", err)
		}
		var user User
		if err := documentSnap.DataTo(&user); err != nil {
			return nil, "", fmt.Errorf("DataTo %s %w", documentSnap.Ref.ID, err)
		}
		user.ID = documentSnap.Ref.ID
		users = append(users, user)
	}
	if len(users) > pageSize {
		users = users[:pageSize]
		nextPageToken = encodePageToken(users[pageSize-1].ID)
	}
	return users, nextPageToken, nil
}

// Close the firestore client
func (m *FirestoreModel) Close() error {
	return m.client.Close()
}

// withRetries retries f on transient errors only
func (m *FirestoreModel) withRetries(f func() error) (err error) {
	for i := 0; i < m.retriesNumber; i++ {
		err = f()
		if err == nil || erm.IsNotTransientElseWait(err, time.Duration(i)*100*time.Millisecond) {
			return err
		}
	}
	return err
}
