package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/accounts"
	"github.com/chatly/authkit/auth/jwt"
	"github.com/chatly/authkit/auth/oidc"
	"github.com/chatly/authkit/logger"
	"github.com/chatly/authkit/session"
)

// fakeBackend is an httptest account service covering login, register,
// and google link.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Wrong email or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-abc",
			"user": map[string]string{
				"id":       "u-1",
				"email":    creds["email"],
				"fullName": "Ada Lovelace",
				"userName": "ada",
			},
		})
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "created"})
	})
	mux.HandleFunc("/auth/google", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["id"] == "reject-me" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-g",
			"user":  map[string]string{"id": "u-7", "email": body["email"], "fullName": body["fullName"]},
		})
	})
	return httptest.NewServer(mux)
}

// stubProvider short-circuits the OAuth dance with canned results.
type stubProvider struct {
	subject string
}

func (s *stubProvider) Name() string { return "google" }
func (s *stubProvider) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}
func (s *stubProvider) Exchange(ctx context.Context, code string) (*oidc.TokenResult, error) {
	return &oidc.TokenResult{AccessToken: "provider-token", TokenType: "Bearer"}, nil
}
func (s *stubProvider) UserInfo(ctx context.Context, accessToken string) (*oidc.UserInfo, error) {
	return &oidc.UserInfo{Subject: s.subject, Email: "ada@gmail.com", Name: "Ada Lovelace"}, nil
}

type testEnv struct {
	router  *gin.Engine
	jar     *session.CookieJar
	manager *session.Manager
}

func newTestEnv(t *testing.T, backendURL string, provider oidc.Provider) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, err := accounts.New(accounts.Config{BaseURL: backendURL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("accounts.New failed: %v", err)
	}
	codec, err := session.NewCodec(&jwt.Config{Secret: "test-secret"}, "test-enc-key")
	if err != nil {
		t.Fatalf("session.NewCodec failed: %v", err)
	}
	log := logger.NewDefault("authkit-test")
	manager := session.NewManager(codec, log)
	jar := session.NewCookieJar(session.CookieConfig{})

	h := New(Config{}, client, manager, jar, provider, nil, log)
	r := gin.New()
	h.RegisterRoutes(r)
	return &testEnv{router: r, jar: jar, manager: manager}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			return c
		}
	}
	return nil
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	w := postJSON(env.router, "/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	cookie := sessionCookie(t, w)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	tok, err := env.manager.Resolve(cookie.Value)
	if err != nil {
		t.Fatalf("cookie does not hold a valid session: %v", err)
	}
	if tok.UserID != "u-1" || tok.AccessToken != "tok-abc" {
		t.Errorf("token = %+v", tok)
	}

	var resp struct {
		Data session.View `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Data.User.Email != "ada@example.com" {
		t.Errorf("view = %+v", resp.Data)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	w := postJSON(env.router, "/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if sessionCookie(t, w) != nil {
		t.Error("no cookie may be set on failed login")
	}
	if !strings.Contains(w.Body.String(), "Wrong email or password") {
		t.Errorf("server message lost: %s", w.Body.String())
	}
}

func TestLogin_BackendDown(t *testing.T) {
	backend := fakeBackend(t)
	backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	w := postJSON(env.router, "/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	if sessionCookie(t, w) != nil {
		t.Error("no cookie may be set when the backend is down")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	w := postJSON(env.router, "/auth/login", map[string]string{"email": "ada@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSignup_AutoSignsIn(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("fullName", "Ada Lovelace")
	mw.WriteField("userName", "ada")
	mw.WriteField("email", "ada@example.com")
	mw.WriteField("password", "hunter22")
	fw, _ := mw.CreateFormFile("profilePic", "ada.png")
	fw.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)
	if cookie == nil {
		t.Fatal("signup must establish a session")
	}
	if _, err := env.manager.Resolve(cookie.Value); err != nil {
		t.Fatalf("cookie does not hold a valid session: %v", err)
	}
}

func TestGoogleRedirect_SetsStateCookie(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, &stubProvider{subject: "google-123"})

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://accounts.example.com/auth?state=") {
		t.Errorf("Location = %q", loc)
	}

	var state string
	for _, c := range w.Result().Cookies() {
		if c.Name == stateCookieName {
			state = c.Value
		}
	}
	if state == "" {
		t.Fatal("state cookie not set")
	}
	if !strings.HasSuffix(loc, state) {
		t.Error("redirect state and cookie state differ")
	}
}

func googleCallback(env *testEnv, state, queryState string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=authcode&state="+queryState, nil)
	if state != "" {
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: state})
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestGoogleCallback_Success(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, &stubProvider{subject: "google-123"})

	w := googleCallback(env, "state-1", "state-1")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
	cookie := sessionCookie(t, w)
	if cookie == nil {
		t.Fatal("successful google sign-in must set a session cookie")
	}
	tok, err := env.manager.Resolve(cookie.Value)
	if err != nil {
		t.Fatalf("cookie does not hold a valid session: %v", err)
	}
	if tok.UserID != "u-7" || tok.AccessToken != "tok-g" {
		t.Errorf("token = %+v", tok)
	}
}

func TestGoogleCallback_LinkFailureLeavesNoSession(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, &stubProvider{subject: "reject-me"})

	w := googleCallback(env, "state-1", "state-1")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?error=link_failed" {
		t.Errorf("Location = %q", loc)
	}
	if sessionCookie(t, w) != nil {
		t.Error("link failure must not establish a session")
	}
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, &stubProvider{subject: "google-123"})

	w := googleCallback(env, "state-1", "state-2")
	if loc := w.Header().Get("Location"); loc != "/login?error=state_mismatch" {
		t.Errorf("Location = %q", loc)
	}
	if sessionCookie(t, w) != nil {
		t.Error("state mismatch must not establish a session")
	}
}

func signIn(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	w := postJSON(env.router, "/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	cookie := sessionCookie(t, w)
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	return cookie
}

func TestGetSession(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)
	cookie := signIn(t, env)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data session.View `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.User.ID != "u-1" {
		t.Errorf("view = %+v", resp.Data)
	}
}

func TestGetSession_NoCookie(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpdateSession_PatchesProfile(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)
	cookie := signIn(t, env)

	body, _ := json.Marshal(map[string]string{"about": "countess of computing"})
	req := httptest.NewRequest(http.MethodPatch, "/auth/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	next := sessionCookie(t, w)
	if next == nil {
		t.Fatal("patch must reissue the session cookie")
	}
	tok, err := env.manager.Resolve(next.Value)
	if err != nil {
		t.Fatalf("reissued cookie invalid: %v", err)
	}
	if tok.About != "countess of computing" {
		t.Errorf("About = %q", tok.About)
	}
	if tok.UserID != "u-1" || tok.AccessToken != "tok-abc" {
		t.Errorf("identity changed: %+v", tok)
	}
}

func TestUpdateSession_ProtectedFieldsIgnored(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)
	cookie := signIn(t, env)

	body := []byte(`{"accessToken":"forged","uid":"u-666","about":"ok"}`)
	req := httptest.NewRequest(http.MethodPatch, "/auth/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	tok, err := env.manager.Resolve(sessionCookie(t, w).Value)
	if err != nil {
		t.Fatalf("reissued cookie invalid: %v", err)
	}
	if tok.AccessToken != "tok-abc" || tok.UserID != "u-1" {
		t.Errorf("protected fields changed: %+v", tok)
	}
	if tok.About != "ok" {
		t.Errorf("whitelisted field not applied: %q", tok.About)
	}
}

func TestUpdateSession_NoCookie(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)

	body := []byte(`{"about":"x"}`)
	req := httptest.NewRequest(http.MethodPatch, "/auth/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	backend := fakeBackend(t)
	defer backend.Close()
	env := newTestEnv(t, backend.URL, nil)
	cookie := signIn(t, env)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
	cleared := sessionCookie(t, w)
	if cleared == nil {
		t.Fatal("logout must rewrite the session cookie")
	}
	if cleared.Value != "" || cleared.MaxAge != -1 {
		t.Errorf("cookie not cleared: %+v", cleared)
	}
}
