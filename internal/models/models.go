package models

import (
	"time"
)

// Entry is one stored value of a client namespace.
// A namespace plays the role of a single browser's local storage.
type Entry struct {
	Namespace string    `gorm:"primaryKey;size:64" json:"namespace"`
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the table name stable if the struct is renamed.
func (Entry) TableName() string {
	return "storage_entries"
}

// Credential is a signup record. The password is kept exactly as entered.
type Credential struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the currently logged in user of a client.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is a forum post. Timestamp is a display string, not a sortable value.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	Likes     int       `json:"likes"`
	LikedByMe bool      `json:"likedByMe"`
	Comments  []Comment `json:"comments"`
}

// Comment has no identity of its own; its position in Post.Comments is its only handle.
type Comment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"ts"`
}
