package auth

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := NewSessions("a-reasonably-long-signing-secret", time.Hour)

	token, err := s.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if err := s.Verify(token); err != nil {
		t.Errorf("Verify() of a fresh token failed: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewSessions("secret-one", time.Hour).Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if err := NewSessions("secret-two", time.Hour).Verify(token); err == nil {
		t.Error("Verify() accepted a token signed with a different secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := NewSessions("a-reasonably-long-signing-secret", time.Hour)

	token, err := s.Issue(time.Now().Add(-2 * time.Hour))
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if err := s.Verify(token); err == nil {
		t.Error("Verify() accepted an expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := NewSessions("a-reasonably-long-signing-secret", time.Hour)
	for _, token := range []string{"", "not.a.jwt", "eyJhbGciOiJub25lIn0.e30."} {
		if err := s.Verify(token); err == nil {
			t.Errorf("Verify(%q) accepted garbage", token)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"bare token", "abc.def.ghi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/signups", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		provided string
		want     bool
	}{
		{"match", "hunter2", "hunter2", true},
		{"mismatch", "hunter2", "hunter3", false},
		{"empty header", "hunter2", "", false},
		{"unconfigured secret", "", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/admin", nil)
			if tt.provided != "" {
				r.Header.Set(AdminHeader, tt.provided)
			}
			if got := IsAdmin(r, tt.secret); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}
