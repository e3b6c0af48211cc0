package discord

import (
	"bytes"
	"encoding/json"
)

// TokenResponse is the token endpoint response as defined in RFC 6749 §5.1.
// It is handed back to the caller unchanged and never stored. Fields Discord
// adds for some scopes, such as webhook or guild, are kept alongside the typed
// ones.
type TokenResponse struct {
	// AccessToken authorises calls to the Discord API on behalf of the user.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer" for Discord.
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	// RefreshToken can be exchanged for a new access token by the client.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope is the space separated list of granted scopes.
	Scope string `json:"scope,omitempty"`

	raw map[string]any
}

type tokenFields TokenResponse

func (t *TokenResponse) UnmarshalJSON(data []byte) error {
	var fields tokenFields
	raw, err := decodeKeepingRaw(data, &fields)
	if err != nil {
		return err
	}
	*t = TokenResponse(fields)
	t.raw = raw
	return nil
}

func (t TokenResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Fields())
}

// Fields returns a fresh map holding the response as Discord sent it, or the
// typed fields when it was built by hand. Callers may add to it.
func (t TokenResponse) Fields() map[string]any {
	if t.raw != nil {
		fields := make(map[string]any, len(t.raw))
		for k, v := range t.raw {
			fields[k] = v
		}
		return fields
	}

	fields := map[string]any{
		"access_token": t.AccessToken,
		"token_type":   t.TokenType,
		"expires_in":   t.ExpiresIn,
	}
	if t.RefreshToken != "" {
		fields["refresh_token"] = t.RefreshToken
	}
	if t.Scope != "" {
		fields["scope"] = t.Scope
	}
	return fields
}

// User is a Discord user profile. The typed fields are the ones this service
// reads; every field Discord sent is kept and written back out by MarshalJSON.
type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`

	raw map[string]any
}

type userFields User

func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	raw, err := decodeKeepingRaw(data, &fields)
	if err != nil {
		return err
	}
	*u = User(fields)
	u.raw = raw
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	if u.raw != nil {
		return json.Marshal(u.raw)
	}
	return json.Marshal(userFields(u))
}

// Raw returns the profile exactly as Discord returned it.
func (u User) Raw() map[string]any {
	return u.raw
}

// decodeKeepingRaw fills typed and also returns every field of the object.
// Numbers stay json.Number so large ids survive a round trip.
func decodeKeepingRaw(data []byte, typed any) (map[string]any, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
