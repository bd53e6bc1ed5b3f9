package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chatly/authkit/errors"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestAuthenticate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "ada@example.com" || creds["password"] != "hunter22" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-abc",
			"user": map[string]string{
				"id":         "u-1",
				"email":      "ada@example.com",
				"fullName":   "Ada Lovelace",
				"userName":   "ada",
				"profilePic": "https://cdn.example.com/ada.png",
				"about":      "first programmer",
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	rec, err := c.Authenticate(context.Background(), Credentials{Email: "ada@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if rec.ID != "u-1" || rec.AccessToken != "tok-abc" {
		t.Errorf("record = %+v", rec)
	}
	if rec.FullName != "Ada Lovelace" || rec.UserName != "ada" || rec.About != "first programmer" {
		t.Errorf("profile fields not mapped: %+v", rec)
	}
}

func TestAuthenticate_MissingFieldsBecomeEmptyStrings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok",
			"user":    map[string]string{"id": "u-2", "email": "x@y.com"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	rec, err := c.Authenticate(context.Background(), Credentials{Email: "x@y.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if rec.ProfilePic != "" || rec.About != "" || rec.UserName != "" {
		t.Errorf("missing fields should be empty strings: %+v", rec)
	}
}

func TestAuthenticate_RejectedWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Wrong email or password"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "bad"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeInvalidCredentials {
		t.Errorf("Code = %s", appErr.Code)
	}
	if appErr.Message != "Wrong email or password" {
		t.Errorf("server message not preserved: %q", appErr.Message)
	}
}

func TestAuthenticate_RejectedWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "bad"})
	appErr, _ := errors.AsAppError(err)
	if appErr == nil || appErr.Message != "Invalid credentials" {
		t.Errorf("expected default message, got %v", err)
	}
}

func TestAuthenticate_SuccessFalseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Account disabled"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if !errors.IsCode(err, errors.ErrCodeInvalidCredentials) {
		t.Fatalf("expected InvalidCredentials, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "Account disabled" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestAuthenticate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if !errors.IsCode(err, errors.ErrCodeServerUnreachable) {
		t.Fatalf("expected ServerUnreachable, got %v", err)
	}
}

func TestAuthenticate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if !errors.IsCode(err, errors.ErrCodeServerUnreachable) {
		t.Fatalf("expected ServerUnreachable on timeout, got %v", err)
	}
}

func TestAuthenticate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	if !errors.IsCode(err, errors.ErrCodeUnknown) {
		t.Fatalf("expected Unknown for 5xx, got %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		if r.FormValue("userName") != "ada" {
			t.Errorf("userName = %q", r.FormValue("userName"))
		}
		f, hdr, err := r.FormFile("profilePic")
		if err != nil {
			t.Fatalf("profilePic missing: %v", err)
		}
		f.Close()
		if hdr.Filename != "ada.png" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "created"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	err := c.Register(context.Background(), Registration{
		FullName:       "Ada Lovelace",
		UserName:       "ada",
		Email:          "ada@example.com",
		Password:       "analytical",
		ProfilePic:     []byte("png-bytes"),
		ProfilePicName: "ada.png",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegister_NoPictureOmitsFilePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		if _, _, err := r.FormFile("profilePic"); err == nil {
			t.Error("profilePic should be absent")
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if err := c.Register(context.Background(), Registration{
		FullName: "Ada Lovelace", UserName: "ada", Email: "ada@example.com", Password: "analytical",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegister_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	err := c.Register(context.Background(), Registration{
		FullName: "Ada Lovelace", UserName: "ada", Email: "ada@example.com", Password: "analytical",
	})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != "Email already registered" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestLinkOAuthAccount_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/google" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != "google-123" || body["fullName"] != "Ada Lovelace" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-g",
			"user": map[string]string{
				"id":       "u-7",
				"email":    "ada@gmail.com",
				"fullName": "Ada Lovelace",
				"userName": "ada",
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	rec, err := c.LinkOAuthAccount(context.Background(), ProviderProfile{
		Email:      "ada@gmail.com",
		Name:       "Ada Lovelace",
		Image:      "https://lh3.example.com/pic",
		ProviderID: "google-123",
	})
	if err != nil {
		t.Fatalf("LinkOAuthAccount failed: %v", err)
	}
	if rec.ID != "u-7" || rec.AccessToken != "tok-g" {
		t.Errorf("record = %+v", rec)
	}
}

func TestLinkOAuthAccount_RejectionAbortsSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	rec, err := c.LinkOAuthAccount(context.Background(), ProviderProfile{ProviderID: "g-1"})
	if rec != nil {
		t.Error("no record may be returned on link failure")
	}
	if !errors.IsCode(err, errors.ErrCodeProviderLinkFailed) {
		t.Fatalf("expected ProviderLinkFailed, got %v", err)
	}
}

func TestLinkOAuthAccount_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv)
	_, err := c.LinkOAuthAccount(context.Background(), ProviderProfile{ProviderID: "g-1"})
	if !errors.IsCode(err, errors.ErrCodeServerUnreachable) {
		t.Fatalf("expected ServerUnreachable, got %v", err)
	}
}

func TestLinkOAuthAccount_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"id": "u-1"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.LinkOAuthAccount(context.Background(), ProviderProfile{ProviderID: "g"}); !errors.IsCode(err, errors.ErrCodeProviderLinkFailed) {
		t.Fatalf("expected ProviderLinkFailed, got %v", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing base_url")
	}
}
