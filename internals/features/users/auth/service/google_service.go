// file: internals/features/users/auth/service/google_service.go
package service

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"sekolahku_backend/internals/configs"
)

// GoogleProfile is the subset of ID-token claims the sign-in flow needs.
type GoogleProfile struct {
	Sub   string
	Email string
	Name  string
}

// VerifyGoogleIDToken checks a Google ID token against the configured client
// id and extracts the profile claims.
func VerifyGoogleIDToken(idToken string) (*GoogleProfile, error) {
	if configs.GoogleClientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, err
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("google token has no email claim")
	}
	return &GoogleProfile{Sub: claims.Sub, Email: claims.Email, Name: claims.Name}, nil
}
