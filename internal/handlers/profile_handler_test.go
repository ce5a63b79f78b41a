package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lancechain/registry_be/internal/models"
)

func TestRegisterEndpoint(t *testing.T) {
	app := setupTestApp(t)

	body, addr := registerBody(t, models.RoleFreelancer)
	resp, decoded := doJSON(t, app, "POST", "/api/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, addr, data["address"])
	assert.Equal(t, "freelancer", data["role"])
	assert.NotEmpty(t, data["token"])

	// same wallet cannot register twice
	resp, decoded = doJSON(t, app, "POST", "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, decoded["success"])
}

func TestRegisterEndpointRejections(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(body map[string]interface{})
		expectedStatus int
	}{
		{
			name:           "missing fee",
			mutate:         func(body map[string]interface{}) { body["fee"] = 0 },
			expectedStatus: fiber.StatusPaymentRequired,
		},
		{
			name:           "too many skills",
			mutate:         func(body map[string]interface{}) { body["skills"] = []string{"a", "b", "c", "d", "e", "f"} },
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "tampered signature",
			mutate:         func(body map[string]interface{}) { body["role"] = "employer" },
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "garbage signature",
			mutate:         func(body map[string]interface{}) { body["signature"] = "0xdead" },
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t)
			body, _ := registerBody(t, models.RoleFreelancer)
			tt.mutate(body)

			resp, decoded := doJSON(t, app, "POST", "/api/auth/register", "", body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, false, decoded["success"])
		})
	}
}

func TestProfileReadAccessOverHTTP(t *testing.T) {
	app := setupTestApp(t)

	freelancerAddr, freelancerToken := registerUser(t, app, models.RoleFreelancer)
	_, otherFreelancerToken := registerUser(t, app, models.RoleFreelancer)
	employerAddr, employerToken := registerUser(t, app, models.RoleEmployer)

	// self read
	resp, decoded := doJSON(t, app, "GET", "/api/profiles/"+freelancerAddr, freelancerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, "Ada Lovelace", data["name"])
	assert.Equal(t, "freelancer", data["role"])

	// employer reads a freelancer
	resp, _ = doJSON(t, app, "GET", "/api/profiles/"+freelancerAddr, employerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// another freelancer is denied
	resp, _ = doJSON(t, app, "GET", "/api/profiles/"+freelancerAddr, otherFreelancerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// a freelancer is denied on the employer's profile too
	resp, _ = doJSON(t, app, "GET", "/api/profiles/"+employerAddr, freelancerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// no token at all
	resp, _ = doJSON(t, app, "GET", "/api/profiles/"+freelancerAddr, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// sub-record index out of range
	resp, _ = doJSON(t, app, "GET", "/api/profiles/"+freelancerAddr+"/experiences/0", freelancerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateProfileOverHTTP(t *testing.T) {
	app := setupTestApp(t)
	addr, token := registerUser(t, app, models.RoleFreelancer)

	update := map[string]interface{}{
		"name":      "Ada L.",
		"photo":     "ipfs://QmNewPhoto",
		"skills":    []string{"go", "rust"},
		"education": "Self-taught",
		"experiences": []map[string]interface{}{
			{"company": "Acme", "duration_days": 400, "title": "Engineer", "description": "backend", "link": "https://acme.test"},
		},
	}
	resp, _ := doJSON(t, app, "PUT", "/api/profile", token, update)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, decoded := doJSON(t, app, "GET", "/api/profiles/"+addr, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, "Ada L.", data["name"])
	// role is immutable through updates
	assert.Equal(t, "freelancer", data["role"])
	assert.Equal(t, float64(1), data["experience_count"])

	resp, decoded = doJSON(t, app, "GET", "/api/profiles/"+addr+"/experiences/0", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decoded["data"].(map[string]interface{})
	assert.Equal(t, "Acme", data["company"])

	// bounds still apply on update
	update["skills"] = []string{}
	resp, _ = doJSON(t, app, "PUT", "/api/profile", token, update)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
