package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// User represents an account on the workspace backend.
type User struct {
	UserID string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Timestamps
}

// UserRef is a reference to a user. The backend sends either a bare id
// or a populated user object; both decode into the same value.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts `"<id>"` or `{"_id": "<id>", ...}`.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = UserRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode user reference: %w", err)
		}
		*r = UserRef{ID: id}
		return nil
	}
	// alias drops the method set so this does not recurse
	type alias UserRef
	var obj struct {
		alias
		LegacyID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode user reference: %w", err)
	}
	*r = UserRef(obj.alias)
	if r.ID == "" {
		r.ID = obj.LegacyID
	}
	return nil
}

// LoginCredentials are forwarded verbatim to the backend login endpoint.
type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the outcome of a login/logout round trip. Cookies are the
// Set-Cookie headers the backend returned and must be relayed to the browser.
type AuthResult struct {
	User    *User          `json:"user,omitempty"`
	Cookies []*http.Cookie `json:"-"`
}
