package service

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

type GoogleIdentity struct {
	Email    string
	Name     string
	GoogleID string
}

type GoogleVerifier interface {
	Verify(idToken string) (GoogleIdentity, error)
}

// IDTokenVerifier checks Google-signed ID tokens against the configured client id.
type IDTokenVerifier struct {
	ClientID string
}

func (v IDTokenVerifier) Verify(idToken string) (GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return GoogleIdentity{}, errors.New("no token provided")
	}
	if v.ClientID == "" {
		return GoogleIdentity{}, errors.New("GOOGLE_CLIENT_ID is not configured")
	}

	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.ClientID}); err != nil {
		return GoogleIdentity{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, err
	}
	if claimSet.Email == "" {
		return GoogleIdentity{}, errors.New("token has no email")
	}
	return GoogleIdentity{Email: claimSet.Email, Name: claimSet.Name, GoogleID: claimSet.Sub}, nil
}
