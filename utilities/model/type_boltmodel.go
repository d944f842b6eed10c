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
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var usersBucketName = []byte("users")

// BoltModel stores users in a local bbolt file
type BoltModel struct {
	db *bbolt.DB
}

// NewBoltModel opens or creates the bbolt file at path
func NewBoltModel(path string) (*BoltModel, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt.Open %s %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("CreateBucketIfNotExists %w", err)
	}
	return &BoltModel{db: db}, nil
}

// Create stores a new user
func (m *BoltModel) Create(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	user.ID = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := m.db.Update(func(tx *bbolt.Tx) error {
		return putUser(tx, user)
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Read a user
func (m *BoltModel) Read(ctx context.Context, id string) (user User, err error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	err = m.db.View(func(tx *bbolt.Tx) error {
		user, err = getUser(tx, id)
		return err
	})
	return user, err
}

// Update a user
func (m *BoltModel) Update(ctx context.Context, id string, update User) (user User, err error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	err = m.db.Update(func(tx *bbolt.Tx) error {
		stored, err := getUser(tx, id)
		if err != nil {
			return err
		}
		user = Merge(stored, update)
		return putUser(tx, user)
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Delete a user
func (m *BoltModel) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(usersBucketName)
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("user %s %w", id, ErrNotFound)
		}
		return bucket.Delete([]byte(id))
	})
}

// List users ordered by id
func (m *BoltModel) List(ctx context.Context, pageSize int, pageToken string) (users []User, nextPageToken string, err error) {
	if err := checkPageSize(pageSize); err != nil {
		return nil, "", err
	}
	afterID, err := decodePageToken(pageToken)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	err = m.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(usersBucketName).Cursor()
		k, v := cursor.First()
		if afterID != "" {
			k, v = cursor.Seek([]byte(afterID))
			if k != nil && string(k) == afterID {
				k, v = cursor.Next()
			}
		}
		for ; k != nil && len(users) <= pageSize; k, v = cursor.Next() {
			var user User
			if err := json.Unmarshal(v, &user); err != nil {
				return fmt.Errorf("user %s json.Unmarshal %w", k, err)
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if len(users) > pageSize {
		users = users[:pageSize]
		nextPageToken = encodePageToken(users[pageSize-1].ID)
	}
	return users, nextPageToken, nil
}

// Close the bbolt file
func (m *BoltModel) Close() error {
	return m.db.Close()
}

func getUser(tx *bbolt.Tx, id string) (user User, err error) {
	v := tx.Bucket(usersBucketName).Get([]byte(id))
	if v == nil {
		return User{}, fmt.Errorf("user %s %w", id, ErrNotFound)
	}
	if err := json.Unmarshal(v, &user); err != nil {
		return User{}, fmt.Errorf("user %s json.Unmarshal %w", id, err)
	}
	return user, nil
}

func putUser(tx *bbolt.Tx, user User) error {
	v, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("user %s json.Marshal %w", user.ID, err)
	}
	return tx.Bucket(usersBucketName).Put([]byte(user.ID), v)
}
