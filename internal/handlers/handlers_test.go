package handlers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lancechain/registry_be/internal/models"
	"github.com/lancechain/registry_be/internal/registry"
	"github.com/lancechain/registry_be/internal/services/treasury"
	"github.com/lancechain/registry_be/internal/store"
)

const testJWTSecret = "test-secret-key"

// setupTestApp wires the façade against an in-memory SQLite database.
// No redis / websocket hub: event publishing is best-effort and skipped.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	st := store.New(db)
	require.NoError(t, st.AutoMigrate())

	reg := registry.New(registry.Options{})
	tr := treasury.NewService(db)

	profileH := NewProfileHandler(reg, st, tr, nil, nil, testJWTSecret, 60)
	projectH := NewProjectHandler(reg, st, tr, nil, nil)

	app := fiber.New()
	RegisterRoutes(app, profileH, projectH, testJWTSecret)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerBody(t *testing.T, role models.Role) (map[string]interface{}, string) {
	t.Helper()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	addr := strings.ToLower(ethcrypto.PubkeyToAddress(key.PublicKey).Hex())

	signedAt := time.Now().Unix()
	digest := registry.RegistrationDigest(addr, role, signedAt)
	prefixed := ethcrypto.Keccak256([]byte("\x19Ethereum Signed Message:\n32"), digest)
	sig, err := ethcrypto.Sign(prefixed, key)
	require.NoError(t, err)

	body := map[string]interface{}{
		"address":   addr,
		"name":      "Ada Lovelace",
		"photo":     "ipfs://QmPhoto",
		"role":      string(role),
		"skills":    []string{"go", "sql"},
		"education": "University of London",
		"signed_at": signedAt,
		"signature": "0x" + hex.EncodeToString(sig),
		"fee":       1,
	}
	return body, addr
}

// registerUser registers a wallet through the HTTP façade and returns its
// address plus the issued session token.
func registerUser(t *testing.T, app *fiber.App, role models.Role) (string, string) {
	t.Helper()

	body, addr := registerBody(t, role)
	resp, decoded := doJSON(t, app, "POST", "/api/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data, ok := decoded["data"].(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return addr, token
}
