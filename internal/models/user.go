package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Username        string `json:"username" gorm:"uniqueIndex"`
	Email           string `json:"email" gorm:"uniqueIndex"`
	Password        string `json:"-"` // bcrypt hash, never serialized
	AvatarURL       string `json:"avatar_url,omitempty"`
	SubscriberCount int64  `json:"subscriber_count"`
	IsAdmin         bool   `json:"is_admin" gorm:"default:false"`
	// Firebase User UID, empty for local accounts; uniqueness only applies
	// to rows that have one.
	FirebaseUID string         `json:"firebase_uid,omitempty" gorm:"uniqueIndex:idx_users_firebase_uid,where:firebase_uid <> ''"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
