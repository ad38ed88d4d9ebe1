package model

import "time"

type User struct {
	UserID         string    `bson:"user_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	Name           string    `bson:"name" json:"name"`
	Password       string    `bson:"password" json:"-"` // argon2 salt$hash
	ProfilePicture string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	TherapistID    string    `bson:"therapist_id,omitempty" json:"therapistId,omitempty"`
}
