package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in MongoDB. Credentials and profile
// fields are owned by the auth/profile services; the chat core only ever
// references users by ID.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	FirstName    string             `json:"firstName" bson:"first_name"`
	LastName     string             `json:"lastName" bson:"last_name"`
	NickName     string             `json:"nickName" bson:"nick_name"`
	Status       string             `json:"status" bson:"status"`
	ProfileImage string             `json:"profileImage" bson:"profile_image"`
	Theme        int                `json:"theme" bson:"theme"`
	Token        string             `json:"-" bson:"token"`
}

// Profile is the lightweight projection of a user embedded in
// conversation and message views.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
}

// ProfileOf builds the projection for a stored user.
func ProfileOf(u *User) Profile {
	return Profile{
		ID:           u.ID.Hex(),
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}
