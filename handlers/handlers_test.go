package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/foodshare/foodshare/internal/listings"
	"github.com/foodshare/foodshare/internal/models"
	"github.com/foodshare/foodshare/internal/requests"
	"github.com/foodshare/foodshare/internal/store"
	"github.com/foodshare/foodshare/internal/tokens"
	"github.com/foodshare/foodshare/pkg/middleware"
)

const testSecret = "handler-test-secret-32-bytes-xxxxxxx"

// newTestRouter wires the full route table over in-memory stores.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenSvc := tokens.NewService(testSecret, 0)
	guard := middleware.RequireAuth(tokenSvc)

	g := gin.New()
	NewTokenHandler(tokenSvc).Register(g)
	NewListingHandler(listings.NewService(store.NewMemoryStore[models.Listing]()), nil).Register(g, guard)
	NewRequestHandler(requests.NewService(store.NewMemoryStore[models.Request]())).Register(g, guard)
	return g
}

// issueToken obtains a token through the real /jwt route.
func issueToken(t *testing.T, g *gin.Engine, email string) string {
	t.Helper()
	w := do(g, "POST", "/jwt", `{"email":"`+email+`"}`, "")
	require.Equal(t, 200, w.Code, "token issue failed: %s", w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func do(g *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, data []byte) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}
