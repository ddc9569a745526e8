package model

import (
	"strings"
	"time"
)

// Identity holds the user's display fields. They are never embedded or
// indexed, only consumed when a prompt is composed.
type Identity struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (i Identity) Complete() bool {
	return strings.TrimSpace(i.Name) != "" && strings.TrimSpace(i.Contact) != ""
}

// Session binds an opaque token to an owner id and the identity fields for
// the lifetime of one user session.
type Session struct {
	Token    string    `json:"-"`
	OwnerID  string    `json:"owner_id"`
	Identity Identity  `json:"identity"`
	Ready    bool      `json:"ready"`
	LastSeen time.Time `json:"-"`
}
