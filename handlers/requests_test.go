package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequests_CreateAndListMine(t *testing.T) {
	g := newTestRouter(t)
	tok := issueToken(t, g, "a@x.com")

	w := do(g, "POST", "/requests", `{"userEmail":"a@x.com","itemId":"f1"}`, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, true, created["acknowledged"])

	// noise from another user
	otherTok := issueToken(t, g, "b@x.com")
	w = do(g, "POST", "/requests", `{"userEmail":"b@x.com","itemId":"f2"}`, otherTok)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(g, "GET", "/my-requests", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeList(t, w.Body.Bytes())
	require.Len(t, mine, 1)
	assert.Equal(t, "a@x.com", mine[0]["userEmail"])
	assert.Equal(t, "f1", mine[0]["itemId"])
}

func TestRequests_QueryEmailMustMatchToken(t *testing.T) {
	g := newTestRouter(t)
	aTok := issueToken(t, g, "a@x.com")
	bTok := issueToken(t, g, "b@x.com")

	w := do(g, "POST", "/requests", `{"userEmail":"a@x.com","itemId":"f1"}`, aTok)
	require.Equal(t, http.StatusCreated, w.Code)

	// own email: allowed
	w = do(g, "GET", "/requests?email=a@x.com", "", aTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w.Body.Bytes()), 1)

	// someone else's email: forbidden, however many requests exist for it
	w = do(g, "GET", "/requests?email=a@x.com", "", bTok)
	require.Equal(t, http.StatusForbidden, w.Code)

	// omitted email falls back to the token identity
	w = do(g, "GET", "/requests", "", bTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeList(t, w.Body.Bytes()))
}

func TestRequests_Validation(t *testing.T) {
	g := newTestRouter(t)
	tok := issueToken(t, g, "a@x.com")

	w := do(g, "POST", "/requests", `{"itemId":"f1"}`, tok)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequests_RequireToken(t *testing.T) {
	g := newTestRouter(t)

	for _, route := range []struct{ method, path, body string }{
		{"POST", "/requests", `{"userEmail":"a@x.com"}`},
		{"GET", "/requests?email=a@x.com", ""},
		{"GET", "/my-requests", ""},
		{"GET", "/all-requests", ""},
	} {
		w := do(g, route.method, route.path, route.body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRequests_ListAll(t *testing.T) {
	g := newTestRouter(t)
	aTok := issueToken(t, g, "a@x.com")
	bTok := issueToken(t, g, "b@x.com")

	w := do(g, "POST", "/requests", `{"userEmail":"a@x.com","itemId":"f1"}`, aTok)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(g, "POST", "/requests", `{"userEmail":"b@x.com","itemId":"f2"}`, bTok)
	require.Equal(t, http.StatusCreated, w.Code)

	// any valid token sees the whole collection (no role model)
	w = do(g, "GET", "/all-requests", "", bTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w.Body.Bytes()), 2)
}
