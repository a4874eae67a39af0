package service

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plaintext password")
	}

	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatal("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatal("VerifyPassword accepted a wrong password")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt is missing")
	}
}

func TestVerifyPassword_MalformedStored(t *testing.T) {
	cases := []string{"", "nodollar", "bad-hex$zz", "$"}
	for _, stored := range cases {
		if VerifyPassword(stored, "anything") {
			t.Fatalf("VerifyPassword accepted malformed stored value %q", stored)
		}
	}
}
