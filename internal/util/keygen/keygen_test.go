package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	kp, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	block, _ := pem.Decode(kp.PrivateKey)
	if block == nil {
		t.Fatal("private key is not valid PEM")
	}
	if block.Type != "RSA PRIVATE KEY" {
		t.Errorf("unexpected PEM block type %q", block.Type)
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		t.Fatalf("private key does not parse as PKCS#1: %v", err)
	}
	if priv.N.BitLen() != 2048 {
		t.Errorf("expected 2048-bit key, got %d", priv.N.BitLen())
	}

	if !bytes.HasPrefix(kp.PublicKey, []byte("ssh-rsa ")) {
		t.Errorf("public key not in authorized_keys format: %q", kp.PublicKey[:20])
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey(kp.PublicKey); err != nil {
		t.Errorf("public key does not parse: %v", err)
	}
}

func TestGenerateRSAKeyPair_KeysMatch(t *testing.T) {
	t.Parallel()
	kp, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	signer, err := ssh.ParsePrivateKey(kp.PrivateKey)
	if err != nil {
		t.Fatalf("private key is not usable for SSH auth: %v", err)
	}
	pub, _, _, _, err := ssh.ParseAuthorizedKey(kp.PublicKey)
	if err != nil {
		t.Fatalf("ParseAuthorizedKey failed: %v", err)
	}
	if !bytes.Equal(signer.PublicKey().Marshal(), pub.Marshal()) {
		t.Error("public key does not match the private key")
	}
}
