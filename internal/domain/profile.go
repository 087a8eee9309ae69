package domain

import "time"

// Profile is the public face of an account. PK: account_id (one profile per account).
type Profile struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Bio       string    `json:"bio" dynamodbav:"bio"`
	AvatarURL *string   `json:"avatar_url" dynamodbav:"avatar_url"`
	Location  string    `json:"location" dynamodbav:"location"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpsertProfileRequest struct {
	Bio       string  `json:"bio" validate:"max=1000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Location  string  `json:"location" validate:"max=200"`
}

// Image is an uploaded object referenced by posts and profiles.
type Image struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
