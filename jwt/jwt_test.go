package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestGenerateAndVerify(t *testing.T) {
	key := newKey(t)
	m := NewManager(key, &key.PublicKey)

	token, tokenID, err := m.GenerateToken(7, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenID, claims.ID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	key := newKey(t)
	m := NewManager(key, &key.PublicKey)

	token, _, err := m.GenerateToken(7, "user", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	signer := NewManager(newKey(t), nil)
	other := newKey(t)
	verifier := NewManager(other, &other.PublicKey)

	token, _, err := signer.GenerateToken(1, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestLoadManager(t *testing.T) {
	key := newKey(t)
	dir := t.TempDir()

	privatePath := filepath.Join(dir, "private_key.pem")
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPath := filepath.Join(dir, "public_key.pem")
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicBytes})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	m, err := LoadManager(privatePath, publicPath)
	require.NoError(t, err)

	token, _, err := m.GenerateToken(3, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = m.VerifyToken(token)
	assert.NoError(t, err)

	_, err = LoadManager(filepath.Join(dir, "missing.pem"), publicPath)
	assert.Error(t, err)
}
