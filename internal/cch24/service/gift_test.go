package service_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"
	"time"

	"codehunt/internal/cch24/service"
	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	return key
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return token
}

func TestGiftWrapRoundTrip(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC))
	w := service.NewGiftWrapper([]byte("elf-secret"), nil, clk)

	token, err := w.Wrap([]byte(`{"cookie":"yum"}`))
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	payload, err := w.Unwrap(token)
	if err != nil || string(payload) != `{"cookie":"yum"}` {
		t.Fatalf("unexpected unwrap: %s %v", payload, err)
	}

	other := service.NewGiftWrapper([]byte("grinch"), nil, clk)
	if _, err := other.Unwrap(token); !pkgerrors.Is(err, pkgerrors.TokenInvalid) {
		t.Fatalf("expected foreign token to fail, got %v", err)
	}
	if _, err := w.Unwrap("candy"); !pkgerrors.Is(err, pkgerrors.TokenInvalid) {
		t.Fatalf("expected garbage to fail, got %v", err)
	}
	if _, err := w.Wrap([]byte(`{"cookie":`)); !pkgerrors.Is(err, pkgerrors.InvalidFormat) {
		t.Fatalf("expected invalid json to fail, got %v", err)
	}
}

func TestGiftDecode(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC))
	santa := newKey(t)
	w := service.NewGiftWrapper([]byte("elf-secret"), &santa.PublicKey, clk)

	claims := jwt.MapClaims{"reindeer": "Rudolph", "treeHeight": 7, "gifts": []any{"yo-yo"}}
	for _, method := range []jwt.SigningMethod{jwt.SigningMethodRS256, jwt.SigningMethodRS512} {
		out, err := w.Decode(sign(t, method, santa, claims) + "\n")
		if err != nil {
			t.Fatalf("%s decode failed: %v", method.Alg(), err)
		}
		var got map[string]any
		if err := json.Unmarshal(out, &got); err != nil {
			t.Fatalf("decoded claims are not JSON: %s", out)
		}
		want := map[string]any{"reindeer": "Rudolph", "treeHeight": float64(7), "gifts": []any{"yo-yo"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected claims (-want +got):\n%s", diff)
		}
	}

	grinch := newKey(t)
	forged := sign(t, jwt.SigningMethodRS256, grinch, claims)
	if _, err := w.Decode(forged); !pkgerrors.Is(err, pkgerrors.SignatureInvalid) {
		t.Fatalf("expected forged token to fail signature, got %v", err)
	}
	hmac := sign(t, jwt.SigningMethodHS256, []byte("elf-secret"), claims)
	if _, err := w.Decode(hmac); !pkgerrors.Is(err, pkgerrors.SignatureInvalid) {
		t.Fatalf("expected hmac token to be refused, got %v", err)
	}
	for _, bad := range []string{"a.b", "x.y.z.w", "not-a-token"} {
		if _, err := w.Decode(bad); !pkgerrors.Is(err, pkgerrors.TokenInvalid) {
			t.Fatalf("expected malformed token %q, got %v", bad, err)
		}
	}

	keyless := service.NewGiftWrapper(nil, nil, clk)
	if _, err := keyless.Decode(forged); !pkgerrors.Is(err, pkgerrors.KeyNotConfigured) {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestParseSantaKey(t *testing.T) {
	key := newKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	parsed, err := service.ParseSantaKey(block)
	if err != nil || !parsed.Equal(&key.PublicKey) {
		t.Fatalf("unexpected key: %v", err)
	}
	if k, err := service.ParseSantaKey([]byte("  \n")); k != nil || err != nil {
		t.Fatalf("blank input must yield no key: %v %v", k, err)
	}
	if _, err := service.ParseSantaKey([]byte("not pem")); err == nil {
		t.Fatalf("expected parse error")
	}
}
