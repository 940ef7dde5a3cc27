package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyServer(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"key": string(pemKey)})
	}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestFetchPublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newKeyServer(t, &key.PublicKey)
	defer srv.Close()

	pub, err := FetchPublicKey(srv.URL)
	require.NoError(t, err)
	assert.True(t, pub.Equal(&key.PublicKey))
}

func TestFetchPublicKeyBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := FetchPublicKey(srv.URL)
	assert.Error(t, err)
}

func TestVerifyJWT(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newKeyServer(t, &key.PublicKey)
	defer srv.Close()
	t.Setenv("IDENTITY_PUBLIC_KEY_URL", srv.URL)

	tokenString := signToken(t, key, jwt.MapClaims{
		"email": "sender@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "sender@example.com", claims["email"])
}

func TestVerifyJWTRejectsWrongKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newKeyServer(t, &key.PublicKey)
	defer srv.Close()
	t.Setenv("IDENTITY_PUBLIC_KEY_URL", srv.URL)

	tokenString := signToken(t, otherKey, jwt.MapClaims{
		"email": "sender@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newKeyServer(t, &key.PublicKey)
	defer srv.Close()
	t.Setenv("IDENTITY_PUBLIC_KEY_URL", srv.URL)

	tokenString := signToken(t, key, jwt.MapClaims{
		"email": "sender@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongAlgorithm(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newKeyServer(t, &key.PublicKey)
	defer srv.Close()
	t.Setenv("IDENTITY_PUBLIC_KEY_URL", srv.URL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "sender@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	assert.Error(t, err)
}
