// Package models defines the wire models of the LinkJournal REST contract,
// shared by the server handlers and the client data layer.
package models

import "time"

// Topic is a user-defined category grouping journals.
type Topic struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements cache.Entity.
func (t Topic) EntityID() string { return t.ID }

// Journal is a saved link entry. TopicID is a weak reference: it may point
// to a topic that no longer exists and the system must tolerate that.
type Journal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TopicID     string    `json:"topic_id"`
	Name        string    `json:"name"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	Screenshot  string    `json:"screenshot,omitempty"`
	IsImportant bool      `json:"is_important"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntityID implements cache.Entity.
func (j Journal) EntityID() string { return j.ID }

// User is the backend profile record synced from the identity provider.
type User struct {
	ID             string    `json:"id,omitempty"`
	FirebaseUID    string    `json:"firebase_uid"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateTopicRequest is the body of POST /api/topics.
type CreateTopicRequest struct {
	Name string `json:"name"`
}

// UpdateTopicRequest is the body of PUT /api/topics/{id}.
type UpdateTopicRequest struct {
	Name string `json:"name"`
}

// CreateJournalRequest is the body of POST /api/journals. Description and
// Screenshot are optional.
type CreateJournalRequest struct {
	TopicID     string `json:"topic_id"`
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
	Screenshot  string `json:"screenshot,omitempty"`
}

// UpdateJournalRequest is the body of PUT /api/journal/{id}. Nil fields are
// left untouched; id, owner, and creation time are immutable.
type UpdateJournalRequest struct {
	TopicID     *string `json:"topic_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Link        *string `json:"link,omitempty"`
	Description *string `json:"description,omitempty"`
	Screenshot  *string `json:"screenshot,omitempty"`
	IsImportant *bool   `json:"is_important,omitempty"`
}

// SignupRequest is the body of POST /api/users/signup, sent once per login
// to sync the identity-provider account into the backend.
type SignupRequest struct {
	FirebaseUID    string `json:"firebase_uid"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	ProfilePicture string `json:"profile_picture"`
}

// UpdateAvatarRequest is the body of PUT /api/users/profile-picture.
type UpdateAvatarRequest struct {
	ProfilePicture string `json:"profile_picture"`
}

// MessageResponse is the generic `{message}` success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToggleImportantResponse is returned by PUT /api/journal/{id}/important.
type ToggleImportantResponse struct {
	Message     string `json:"message"`
	IsImportant bool   `json:"isImportant"`
}

// AvatarResponse is returned by PUT /api/users/profile-picture.
type AvatarResponse struct {
	Message        string `json:"message"`
	ProfilePicture string `json:"profile_picture"`
}

// PresignResponse is returned by POST /api/uploads/presign. UploadURL accepts
// a single PUT with the binary payload; PublicURL resolves the object after
// the upload completes.
type PresignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// ErrorResponse is the `{"error": "..."}` failure payload used by every
// backend endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
