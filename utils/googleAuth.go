package utils

import (
	"elearn/config"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// GoogleTokenInfo is the provider's answer for a verified ID token
type GoogleTokenInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"` // provider returns "true"/"false" strings
	Audience      string `json:"aud"`
	Name          string `json:"name"`
}

// Verified reports the provider-side email verification flag.
func (t *GoogleTokenInfo) Verified() bool {
	return t.EmailVerified == "true"
}

// VerifyGoogleToken verifies a provider-issued ID token against the
// tokeninfo endpoint and checks the audience matches our client ID.
// The check happens out-of-process; nothing here touches the local
// user store.
func VerifyGoogleToken(idToken string) (*GoogleTokenInfo, error) {
	client := resty.New()
	resp, err := client.R().
		SetQueryParam("id_token", idToken).
		Get(config.AppConfig.GoogleTokenInfo)
	if err != nil {
		log.Printf("Error calling tokeninfo endpoint: %v", err)
		return nil, fmt.Errorf("identity provider unreachable")
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("provider rejected token")
	}

	var info GoogleTokenInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		log.Printf("Failed to parse tokeninfo response: %v", err)
		return nil, fmt.Errorf("invalid provider response")
	}

	if info.Audience != config.AppConfig.GoogleClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Email == "" {
		return nil, fmt.Errorf("provider token carries no email")
	}

	return &info, nil
}
