package service

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"strings"

	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// GiftCookie is the cookie carrying a wrapped gift.
const GiftCookie = "gift"

type giftClaims struct {
	Gift json.RawMessage `json:"gift"`
	jwt.RegisteredClaims
}

// GiftWrapper signs gift payloads into HS256 tokens and checks tokens signed
// by Santa's RSA key.
type GiftWrapper struct {
	secret []byte
	santa  *rsa.PublicKey
	clock  clock.Clock
}

// NewGiftWrapper builds a wrapper. santa may be nil, in which case Decode
// reports that no key is configured.
func NewGiftWrapper(secret []byte, santa *rsa.PublicKey, clk clock.Clock) *GiftWrapper {
	return &GiftWrapper{secret: secret, santa: santa, clock: clk}
}

// ParseSantaKey reads a PEM encoded RSA public key. An empty input yields nil.
func ParseSantaKey(pem []byte) (*rsa.PublicKey, error) {
	if len(strings.TrimSpace(string(pem))) == 0 {
		return nil, nil
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "parse santa key failed")
	}
	return key, nil
}

// Wrap signs the JSON payload and returns the token.
func (w *GiftWrapper) Wrap(payload []byte) (string, error) {
	if !json.Valid(payload) {
		return "", pkgerrors.New(pkgerrors.InvalidFormat).WithMessage("payload is not JSON")
	}
	claims := giftClaims{
		Gift: json.RawMessage(payload),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(w.clock.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(w.secret)
	if err != nil {
		return "", pkgerrors.Wrap(err, pkgerrors.InternalServerError)
	}
	return signed, nil
}

// Unwrap verifies a token made by Wrap and returns the original payload.
func (w *GiftWrapper) Unwrap(token string) ([]byte, error) {
	claims := &giftClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return w.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(w.clock.Now),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.TokenInvalid)
	}
	if len(claims.Gift) == 0 {
		return nil, pkgerrors.New(pkgerrors.TokenInvalid)
	}
	return claims.Gift, nil
}

// Decode verifies an RS256 or RS512 token against Santa's key and returns
// its claims as JSON.
func (w *GiftWrapper) Decode(token string) ([]byte, error) {
	if w.santa == nil {
		return nil, pkgerrors.New(pkgerrors.KeyNotConfigured)
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return w.santa, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS512.Alg()}),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(w.clock.Now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, pkgerrors.Wrap(err, pkgerrors.TokenInvalid)
	default:
		return nil, pkgerrors.Wrap(err, pkgerrors.SignatureInvalid)
	}
	out, err := json.Marshal(claims)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.InternalServerError)
	}
	return out, nil
}
