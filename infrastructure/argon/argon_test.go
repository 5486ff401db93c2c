package argon

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateAndCompare(t *testing.T) {
	hash, err := CreateHash("secret-pass", DefaultParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash encoding: %q", hash)
	}

	ok, err := ComparePasswordAndHash("secret-pass", hash)
	if err != nil {
		t.Fatalf("compare hash: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to match")
	}

	ok, err = ComparePasswordAndHash("wrong", hash)
	if err != nil {
		t.Fatalf("compare hash wrong: %v", err)
	}
	if ok {
		t.Fatalf("expected password mismatch")
	}
}

func TestCreateHash_EmptyPassword(t *testing.T) {
	if _, err := CreateHash("   ", nil); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCompare_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=2,p=1$!!$aGFzaA",
	} {
		if _, err := ComparePasswordAndHash("x", encoded); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("expected ErrMalformedHash for %q, got %v", encoded, err)
		}
	}
}
