package identity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Anonymous is the identity used when no principal header is forwarded.
const Anonymous = "anonymous"

// HeaderName is the forwarded-principal header set by the hosting platform.
const HeaderName = "x-ms-client-principal"

type principal struct {
	UserID string `json:"userId"`
}

// Resolve derives the caller identity from the forwarded-principal header
// value. An absent or empty header means an unauthenticated caller. A header
// that is present but not valid base64-encoded JSON is an error; the request
// should fail rather than run under a guessed identity.
func Resolve(header string) (string, error) {
	if header == "" {
		return Anonymous, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return "", fmt.Errorf("decode client principal: %w", err)
	}

	var p principal
	if err := json.Unmarshal(decoded, &p); err != nil {
		return "", fmt.Errorf("parse client principal: %w", err)
	}

	if p.UserID == "" {
		return Anonymous, nil
	}
	return p.UserID, nil
}
