package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation represents a chat conversation in MongoDB. Members holds
// user IDs in insertion order; a direct conversation has exactly two,
// a group has the admin first followed by the invited members. Member
// uniqueness is not enforced by the store.
type Conversation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Members   []string           `json:"members" bson:"members"`
	IsGroup   bool               `json:"isGroup" bson:"is_group"`
	GroupName string             `json:"groupName,omitempty" bson:"group_name,omitempty"`
}

// ConversationView is the per-conversation listing entry rendered by the
// client: the other participants resolved to profiles plus the group
// metadata.
type ConversationView struct {
	Users          []Profile `json:"users"`
	ConversationID string    `json:"conversationId"`
	IsGroup        bool      `json:"isGroup"`
	GroupName      string    `json:"groupName"`
}
