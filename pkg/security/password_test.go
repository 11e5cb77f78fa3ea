package security_test

import (
	"strings"
	"testing"

	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
	"golang.org/x/crypto/bcrypt"
)

var fastParams = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", fastParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected digest format %q", hash)
	}
	if strings.Contains(hash, "very-secure-password") {
		t.Fatal("digest must not contain the secret")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashUsesRandomSalt(t *testing.T) {
	hasher := security.NewPasswordHasher(fastParams)
	first, err := hasher.Hash("same-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("same-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct digests for the same secret")
	}
}

func TestHashRejectsEmptySecret(t *testing.T) {
	if _, err := security.NewPasswordHasher(fastParams).Hash(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	hasher := security.NewPasswordHasher(fastParams)
	ok, err := hasher.Verify("old-secret", string(legacy))
	if err != nil || !ok {
		t.Fatalf("expected legacy digest to verify, ok=%v err=%v", ok, err)
	}
	ok, err = hasher.Verify("wrong", string(legacy))
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, ok=%v err=%v", ok, err)
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, digest := range []string{
		"not-a-hash",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$2a$broken",
	} {
		if _, err := security.VerifyPassword("irrelevant", digest); err == nil {
			t.Fatalf("expected error for malformed hash %q", digest)
		}
	}
}
