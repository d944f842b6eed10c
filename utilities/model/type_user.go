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
	"errors"
	"time"
)

var (
	// ErrNotFound no user with this id
	ErrNotFound = errors.New("model: user not found")
	// ErrInvalidPageToken the page token was not issued by List
	ErrInvalidPageToken = errors.New("model: invalid page token")
)

// User record
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description"`
	ImageURL    string    `json:"imageUrl,omitempty" firestore:"imageUrl"`
	ImageObject string    `json:"imageObject,omitempty" firestore:"imageObject"`
	CreatedBy   string    `json:"createdBy,omitempty" firestore:"createdBy"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// Model user store capability
type Model interface {
	// Create assigns a new id and returns the stored user
	Create(ctx context.Context, user User) (User, error)
	Read(ctx context.Context, id string) (User, error)
	// Update merges user into the stored one, see Merge
	Update(ctx context.Context, id string, user User) (User, error)
	Delete(ctx context.Context, id string) error
	// List returns at most pageSize users after pageToken, nextPageToken is empty on the last page
	List(ctx context.Context, pageSize int, pageToken string) (users []User, nextPageToken string, err error)
	Close() error
}

// Merge applies an update to a stored user.
// Title and description are replaced, image fields only when the update carries a new image.
// Id, creator and creation time are kept.
func Merge(stored User, update User) User {
	stored.Title = update.Title
	stored.Description = update.Description
	if update.ImageURL != "" {
		stored.ImageURL = update.ImageURL
		stored.ImageObject = update.ImageObject
	}
	return stored
}
