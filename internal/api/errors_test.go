package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func responseWith(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseErrorMessageProbing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "message field",
			body: `{"message":"These credentials do not match our records"}`,
			want: "These credentials do not match our records",
		},
		{
			name: "error field",
			body: `{"error":"token expired"}`,
			want: "token expired",
		},
		{
			name: "message wins over error",
			body: `{"message":"primary","error":"secondary"}`,
			want: "primary",
		},
		{
			name: "field errors map",
			body: `{"errors":{"name":["name too short"],"width":["width invalid"]}}`,
			want: "name too short",
		},
		{
			name: "empty body falls back",
			body: ``,
			want: "operation failed",
		},
		{
			name: "non JSON body falls back",
			body: `<html>502 Bad Gateway</html>`,
			want: "operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ParseResponseError(responseWith(http.StatusBadRequest, tt.body), "operation failed")
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.Status != http.StatusBadRequest {
				t.Errorf("Status = %d", apiErr.Status)
			}
		})
	}
}

func TestParseResponseErrorClassifiesStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadRequest, KindServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			apiErr := ParseResponseError(responseWith(tt.status, "{}"), "failed")
			if apiErr.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", apiErr.Kind, tt.want)
			}
		})
	}
}

func TestKindHelpersMatchWrappedErrors(t *testing.T) {
	authErr := fmt.Errorf("store action: %w", NewError(KindAuth, "not authenticated"))
	if !IsAuthError(authErr) {
		t.Error("IsAuthError should see through wrapping")
	}
	if IsNotFound(authErr) {
		t.Error("IsNotFound misclassified an auth error")
	}

	netErr := NetworkError(errors.New("dial tcp: refused"), "request failed, check your connection")
	if !IsNetworkError(netErr) {
		t.Error("IsNetworkError on NetworkError")
	}
	if !strings.Contains(netErr.Error(), "check your connection") {
		t.Errorf("message = %q", netErr.Error())
	}
	if errors.Unwrap(netErr) == nil {
		t.Error("NetworkError should keep the cause for Unwrap")
	}

	if IsAuthError(errors.New("plain")) {
		t.Error("plain errors must not match")
	}
}

func TestErrorStringIncludesStatus(t *testing.T) {
	e := &Error{Kind: KindServer, Status: 503, Message: "backend unavailable"}
	if got := e.Error(); got != "backend unavailable (status 503)" {
		t.Errorf("Error() = %q", got)
	}

	e = NewError(KindValidation, "name is required")
	if got := e.Error(); got != "name is required" {
		t.Errorf("Error() = %q", got)
	}
}
