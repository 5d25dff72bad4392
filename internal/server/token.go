package server

import (
	"context"
	"crypto/subtle"

	"github.com/emrgen/thirdplace/internal/module"
	"github.com/sirupsen/logrus"
)

var _ module.TokenVerifier = (*StaticTokenService)(nil)

// StaticTokenService accepts a single shared token.
type StaticTokenService struct {
	token []byte
}

func NewStaticTokenService(token string) *StaticTokenService {
	return &StaticTokenService{token: []byte(token)}
}

func (t *StaticTokenService) VerifyToken(_ context.Context, token string) (bool, error) {
	return subtle.ConstantTimeCompare(t.token, []byte(token)) == 1, nil
}

// NullTokenService accepts every token. It is used when no token is
// configured.
type NullTokenService struct{}

var _ module.TokenVerifier = NullTokenService{}

func NewNullTokenService() *NullTokenService {
	return &NullTokenService{}
}

func (t NullTokenService) VerifyToken(_ context.Context, _ string) (bool, error) {
	logrus.Debug("null token service: access granted")
	return true, nil
}

func tokenVerifier(token string) module.TokenVerifier {
	if token == "" {
		logrus.Warn("auth.token is empty, api is open")
		return NewNullTokenService()
	}
	return NewStaticTokenService(token)
}
