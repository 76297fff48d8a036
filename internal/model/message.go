package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypeText is the default message classification.
const TypeText = "text"

// Message represents a chat message in MongoDB. ConversationID is stored
// as a plain string: referential integrity against the conversations
// collection is advisory, not enforced. Read is monotonic false -> true;
// there is no reset operation.
type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID string             `json:"conversationId" bson:"conversation_id"`
	SenderID       string             `json:"senderId" bson:"sender_id"`
	Body           string             `json:"message" bson:"body"`
	Type           string             `json:"type" bson:"type"`
	TimeStamp      int64              `json:"timeStamp" bson:"time_stamp"`
	Read           bool               `json:"read" bson:"read"`
}

// MessageView is a message resolved against the sender's profile, as
// returned by the fetch-messages endpoint.
type MessageView struct {
	User      Profile `json:"user"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	TimeStamp int64   `json:"timeStamp"`
}
