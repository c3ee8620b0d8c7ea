package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// RefreshToken rows are never deleted on revocation, only flagged, so a
// rotated-out token can still be recognised as a replay.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// RevokedToken is the denylist entry for an access token surrendered at
// logout. ExpiresAt mirrors the token's own expiry so the cleanup sweep
// can drop rows once they stop mattering.
type RevokedToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
}

type BlogPost struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null"        json:"title"`
	Content     string    `gorm:"type:text"                json:"content"`
	CreatedDate time.Time `json:"created_date"`
	IsDraft     bool      `gorm:"default:false"            json:"is_draft"`
}

type PinnedProject struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"not null"                 json:"title"`
	Description string   `gorm:"size:2000"                json:"description"`
	Tags        []string `gorm:"serializer:json"          json:"tags"`
	GithubURL   string   `json:"github_url"`
}

type TechStack struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null"                 json:"name"`
	Level string `gorm:"not null"                 json:"level"`
}
