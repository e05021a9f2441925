package security

import (
	"bytes"
	"testing"
)

func TestTokenCipherRoundTrip(t *testing.T) {
	cipher, err := NewTokenCipher([]byte("install-secret"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	plaintext := []byte(`{"token":"abc","rememberMe":true}`)
	sealed, err := cipher.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("abc")) {
		t.Fatal("ciphertext leaks plaintext")
	}

	opened, err := cipher.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("round trip mismatch: got %q", opened)
	}
}

func TestTokenCipherRejectsTampering(t *testing.T) {
	cipher, err := NewTokenCipher([]byte("install-secret"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	sealed, err := cipher.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	sealed[len(sealed)-1] ^= 0xff
	if _, err := cipher.Open(sealed); err == nil {
		t.Fatal("expected error for tampered ciphertext")
	}
}

func TestTokenCipherRejectsShortCiphertext(t *testing.T) {
	cipher, err := NewTokenCipher([]byte("install-secret"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	if _, err := cipher.Open([]byte("short")); err == nil {
		t.Fatal("expected error for truncated ciphertext")
	}
}

func TestTokenCipherKeysDiffer(t *testing.T) {
	one, err := NewTokenCipher([]byte("secret-one"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	two, err := NewTokenCipher([]byte("secret-two"), []byte("salt"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	sealed, err := one.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := two.Open(sealed); err == nil {
		t.Fatal("expected error opening with a different key")
	}
}
