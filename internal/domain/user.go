package domain

import "time"

// User is a platform account as returned by the remote API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Farm      string    `json:"farm,omitempty"`
	Location  string    `json:"location,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Session is the result of a successful sign-in against the remote API.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// Credentials is the login form DTO.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Activity is one entry of a user's activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	At          time.Time `json:"at"`
}

// Notification is a message addressed to a single user.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Read    bool      `json:"read"`
	At      time.Time `json:"at"`
}
