package state

import (
	"github.com/google/uuid"
)

var sessionID = uuid.NewString()

// SessionID identifies this page view in logs and in requests to the counter service.
func SessionID() string {
	return sessionID
}
