package models

import "encoding/json"

// User is the profile record returned by the login endpoint. The backend
// has no dedicated user endpoint, so this is only ever populated from the
// login response.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// UnmarshalJSON tolerates numeric user ids.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = flexibleString(aux.ID)
	return nil
}

// LoginResult carries the outcome of a successful credential exchange.
type LoginResult struct {
	User  *User
	Token string
}

// Credentials are the login form inputs.
type Credentials struct {
	Email    string
	Password string
}
