package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/config"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		Env:             "test",
		DBPath:          filepath.Join(t.TempDir(), "kisan.db"),
		JWTSecret:       strings.Repeat("k", config.MinSecretLen),
		TokenTTL:        time.Hour,
		WeatherEndpoint: "http://127.0.0.1:0/forecast",
		GeocodeEndpoint: "http://127.0.0.1:0/search",
		CORSOrigins:     []string{"*"},
		SeedOnStart:     true,
	}
}

func call(t *testing.T, h http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func register(t *testing.T, h http.Handler, name, email string) session {
	t.Helper()
	rec := call(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out
}

func newApp(t *testing.T) *app {
	t.Helper()
	a, err := build(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestRegisterFarmRecommend(t *testing.T) {
	a, err := build(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	h := a.echo

	rec := call(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Asha", "email": "a@test.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	rec = call(t, h, http.MethodPost, "/api/farm", session.Token, map[string]any{
		"farmName": "North Field", "location": "Kuttanad", "soilType": "loamy",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var farm struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &farm))

	rec = call(t, h, http.MethodPost, "/api/crops/recommendations", session.Token, map[string]any{
		"farmId": farm.ID, "waterAvailability": "medium",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Success         bool `json:"success"`
		Recommendations []struct {
			Name  string `json:"name"`
			Score int    `json:"recommendationScore"`
		} `json:"recommendations"`
		Filters struct {
			SoilType string `json:"soilType"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "loamy", out.Filters.SoilType)

	scores := map[string]int{}
	for i, r := range out.Recommendations {
		scores[r.Name] = r.Score
		if i > 0 {
			assert.LessOrEqual(t, r.Score, out.Recommendations[i-1].Score)
		}
	}
	require.Contains(t, scores, "Rice")
	require.Contains(t, scores, "Rubber")
	assert.GreaterOrEqual(t, scores["Rice"], scores["Rubber"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a, err := build(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := call(t, a.echo, http.MethodGet, "/api/farm", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	rec = call(t, a.echo, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)

	rec = call(t, a.echo, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kisan_chat_dropped_events_total")
}

func TestAssistantWithoutModel(t *testing.T) {
	a, err := build(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := call(t, a.echo, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ravi", "email": "r@test.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	rec = call(t, a.echo, http.MethodPost, "/api/assistant/chat", session.Token, map[string]any{"message": "when to sow rice?"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDeletedAccountTokenIsRejected(t *testing.T) {
	a := newApp(t)
	s := register(t, a.echo, "Mini", "m@test.com")

	rec := call(t, a.echo, http.MethodDelete, "/api/user/profile", s.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, a.echo, http.MethodPost, "/api/farm", s.Token, map[string]any{
		"farmName": "Orphan", "location": "Thrissur",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = call(t, a.echo, http.MethodPost, "/api/expenses", s.Token, map[string]any{
		"category": "seeds", "item": "paddy", "amount": 100,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = call(t, a.echo, http.MethodGet, "/api/user/profile", s.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type chatUsers struct {
	Data []struct {
		ID       string `json:"id"`
		IsOnline bool   `json:"isOnline"`
	} `json:"data"`
}

// onlineOf reports uid's presence as seen by the holder of tok.
func onlineOf(h http.Handler, tok, uid string) (online, listed bool) {
	req := httptest.NewRequest(http.MethodGet, "/api/chat/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out chatUsers
	if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &out) != nil {
		return false, false
	}
	for _, u := range out.Data {
		if u.ID == uid {
			return u.IsOnline, true
		}
	}
	return false, false
}

func TestChatStreamPushesAndClearsPresence(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.echo)
	defer srv.Close()

	asha := register(t, a.echo, "Asha", "a@test.com")
	ravi := register(t, a.echo, "Ravi", "r@test.com")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/stream?token=" + ravi.Token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	online, listed := onlineOf(a.echo, asha.Token, ravi.User.ID)
	require.True(t, listed)
	assert.True(t, online)

	rec := call(t, a.echo, http.MethodPost, "/api/chat/send", asha.Token, map[string]any{
		"receiverId": ravi.User.ID, "content": "  rain tomorrow?  ",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var ev struct {
		Type    string `json:"type"`
		Message struct {
			Content string `json:"content"`
			Sender  struct {
				ID string `json:"id"`
			} `json:"sender"`
		} `json:"message"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "message", ev.Type)
	assert.Equal(t, "rain tomorrow?", ev.Message.Content)
	assert.Equal(t, asha.User.ID, ev.Message.Sender.ID)

	rec = call(t, a.echo, http.MethodGet, "/api/chat/unread-count", ravi.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":1}`, rec.Body.String())

	rec = call(t, a.echo, http.MethodGet, "/api/chat/messages/"+asha.User.ID, ravi.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rain tomorrow?")

	rec = call(t, a.echo, http.MethodGet, "/api/chat/unread-count", ravi.Token, nil)
	assert.JSONEq(t, `{"success":true,"data":0}`, rec.Body.String())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		online, listed := onlineOf(a.echo, asha.Token, ravi.User.ID)
		return listed && !online
	}, 5*time.Second, 20*time.Millisecond)
}

func TestChatStreamNeedsToken(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.echo)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/chat/stream", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
