package httpclient

import (
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}
	want := "httpclient: not_found (HTTP 404): HTTP 404"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")
	outer := &Error{Code: ErrCodeConnection, Message: "wrapped", Err: inner}
	if outer.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
	}{
		{200, true, 0},
		{201, true, 0},
		{204, true, 0},
		{400, false, ErrCodeValidation},
		{401, false, ErrCodeAuth},
		{403, false, ErrCodeAuth},
		{404, false, ErrCodeNotFound},
		{422, false, ErrCodeValidation},
		{500, false, ErrCodeServer},
		{503, false, ErrCodeServer},
	}
	for _, tt := range tests {
		got := ClassifyStatusCode(tt.code, []byte("body"))
		if tt.wantNil {
			if got != nil {
				t.Errorf("ClassifyStatusCode(%d) = %v, want nil", tt.code, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ClassifyStatusCode(%d) = nil, want error", tt.code)
			continue
		}
		if got.Code != tt.errCode {
			t.Errorf("ClassifyStatusCode(%d).Code = %v, want %v", tt.code, got.Code, tt.errCode)
		}
		if string(got.Body) != "body" {
			t.Errorf("ClassifyStatusCode(%d) dropped the body", tt.code)
		}
	}
}

func TestIsUnreachable(t *testing.T) {
	if !IsUnreachable(NewTimeoutError(fmt.Errorf("deadline"))) {
		t.Error("timeout should be unreachable")
	}
	if !IsUnreachable(NewConnectionError(fmt.Errorf("refused"))) {
		t.Error("connection should be unreachable")
	}
	if IsUnreachable(ClassifyStatusCode(500, nil)) {
		t.Error("HTTP 500 produced a response; not unreachable")
	}
}
