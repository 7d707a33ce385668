package tokens

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewService("test-secret-32-bytes-should-be-long-enough", 0)

	tok, err := svc.Issue("donor@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != "donor@example.com" {
		t.Fatalf("unexpected email claim: got=%q", claims.Email)
	}
}

func TestIssue_EmptyEmail(t *testing.T) {
	svc := NewService("secret-one-32-bytes-xxxxxxxxxxxxxxxx", 0)
	if _, err := svc.Issue(""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got: %v", err)
	}
}

func TestIssue_ExpirySetToTTL(t *testing.T) {
	svc := NewService("another-secret-32-bytes-longgggg", 0)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	want := issued.Add(7 * 24 * time.Hour)
	if !claims.ExpiresAt.Time.Equal(want) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt.Time, want)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService("expiry-secret-32-bytes-xxxxxxxxxxxx", 0)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	tok, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	// move the clock past the 7 day lifetime
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got: %v", err)
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	issuer := NewService("secret-one-32-bytes-xxxxxxxxxxxxxxxx", 0)
	verifier := NewService("different-secret-xxxxxxxxxxxxxxxx", 0)
	tok, err := issuer.Issue("bob@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := verifier.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got: %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewService("x", 0)
	if _, err := svc.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got: %v", err)
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	svc := NewService("x", 0)
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"a@x.com","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none token, got: %v", err)
	}
}

// Tampering with the payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	svc := NewService("tamper-test-secret-32-bytes-xxxxxxx", 0)
	tok, err := svc.Issue("honest@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payload), "honest", "attacker", 1)))
	if _, err := svc.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature verification to fail for tampered token, got: %v", err)
	}
}
