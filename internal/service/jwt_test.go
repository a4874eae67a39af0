package service

import (
	"os"
	"testing"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()
}

func TestJWTRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	id, role, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d; want 42", id)
	}
	if role != "user" {
		t.Fatalf("role = %q; want user", role)
	}
}

func TestAdminJWTCarriesRole(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateAdminJWT(7)
	if err != nil {
		t.Fatalf("GenerateAdminJWT: %v", err)
	}

	id, role, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if id != 7 || role != "admin" {
		t.Fatalf("got id=%d role=%q; want id=7 role=admin", id, role)
	}
}

func TestParseJWT_RejectsGarbage(t *testing.T) {
	initTestJWT(t)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := ParseJWT(tok); err == nil {
			t.Fatalf("ParseJWT(%q) accepted an invalid token", tok)
		}
	}
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	InitJWT()
	token, err := GenerateJWT(1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	os.Setenv("JWT_SECRET", "second-secret")
	InitJWT()
	if _, _, err := ParseJWT(token); err == nil {
		t.Fatal("ParseJWT accepted a token signed with a different secret")
	}
}
