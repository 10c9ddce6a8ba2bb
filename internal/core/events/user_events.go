package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated = "user.created"
	EventTypeUserUpdated = "user.updated"
)

type UserCreatedEvent struct {
	BaseEvent
	UID       string   `json:"uid"`
	Username  string   `json:"username"`
	UserType  int      `json:"user_type"`
	Companies []string `json:"companies"`
}

func NewUserCreatedEvent(uid, username string, userType int, companies []string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"uid":       uid,
				"username":  username,
				"user_type": userType,
				"companies": companies,
			},
		},
		UID:       uid,
		Username:  username,
		UserType:  userType,
		Companies: companies,
	}
}

// UserUpdatedEvent lists the patched field names, never their values.
type UserUpdatedEvent struct {
	BaseEvent
	UID    string   `json:"uid"`
	Fields []string `json:"fields"`
}

func NewUserUpdatedEvent(uid string, fields []string) *UserUpdatedEvent {
	return &UserUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"uid":    uid,
				"fields": fields,
			},
		},
		UID:    uid,
		Fields: fields,
	}
}
