package jwtx

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/ssh"
)

// KeyKind identifies the family of a verification key.
type KeyKind string

const (
	KindSecret  KeyKind = "oct"
	KindRSA     KeyKind = "RSA"
	KindEC      KeyKind = "EC"
	KindEd25519 KeyKind = "OKP"
)

// Key is the material used to verify incoming assertions. It is either a
// shared HMAC secret or an asymmetric public key, optionally with the
// matching private key so the same Key can also mint assertions (tests and
// the CLI use that).
type Key struct {
	kind    KeyKind
	kid     string
	secret  []byte
	public  crypto.PublicKey
	private crypto.Signer
}

// NewSecretKey wraps an HMAC shared secret.
func NewSecretKey(secret []byte) (*Key, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty secret")
	}
	return &Key{kind: KindSecret, secret: bytes.Clone(secret)}, nil
}

// NewPublicKey wraps an RSA, ECDSA or Ed25519 public key.
func NewPublicKey(pub crypto.PublicKey) (*Key, error) {
	switch p := pub.(type) {
	case *rsa.PublicKey:
		return &Key{kind: KindRSA, public: p}, nil
	case *ecdsa.PublicKey:
		if _, err := ecAlgorithm(p.Curve); err != nil {
			return nil, err
		}
		return &Key{kind: KindEC, public: p}, nil
	case ed25519.PublicKey:
		return &Key{kind: KindEd25519, public: p}, nil
	case *ed25519.PublicKey:
		return &Key{kind: KindEd25519, public: *p}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, pub)
	}
}

// NewPrivateKey wraps a private key; its public half is used for verification.
func NewPrivateKey(priv any) (*Key, error) {
	var signer crypto.Signer
	switch p := priv.(type) {
	case *rsa.PrivateKey:
		signer = p
	case *ecdsa.PrivateKey:
		signer = p
	case ed25519.PrivateKey:
		signer = p
	case *ed25519.PrivateKey:
		signer = *p
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, priv)
	}

	k, err := NewPublicKey(signer.Public())
	if err != nil {
		return nil, err
	}
	k.private = signer
	return k, nil
}

// WithKID returns a copy of k carrying the given key identifier. The kid is
// written into the header of assertions signed with the key.
func (k *Key) WithKID(kid string) *Key {
	cp := *k
	cp.kid = kid
	return &cp
}

func (k *Key) Kind() KeyKind { return k.kind }
func (k *Key) KID() string   { return k.kid }

// CanSign reports whether the key holds secret or private material.
func (k *Key) CanSign() bool {
	return k.kind == KindSecret || k.private != nil
}

// Algorithms lists the JWS algorithms accepted for this key. Tokens using
// any other algorithm are rejected before signature verification, which
// also rules out "none" and HMAC-with-public-key confusion.
func (k *Key) Algorithms() []string {
	switch k.kind {
	case KindSecret:
		return []string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}
	case KindRSA:
		return []string{
			jwt.SigningMethodRS256.Alg(),
			jwt.SigningMethodRS384.Alg(),
			jwt.SigningMethodRS512.Alg(),
			jwt.SigningMethodPS256.Alg(),
			jwt.SigningMethodPS384.Alg(),
			jwt.SigningMethodPS512.Alg(),
		}
	case KindEC:
		alg, _ := ecAlgorithm(k.public.(*ecdsa.PublicKey).Curve)
		return []string{alg}
	case KindEd25519:
		return []string{jwt.SigningMethodEdDSA.Alg()}
	default:
		return nil
	}
}

// DefaultAlgorithm is the algorithm used when signing without an explicit one.
func (k *Key) DefaultAlgorithm() string {
	algs := k.Algorithms()
	if len(algs) == 0 {
		return ""
	}
	return algs[0]
}

// verificationKey is what jwt.Keyfunc hands back to the parser.
func (k *Key) verificationKey() any {
	if k.kind == KindSecret {
		return k.secret
	}
	return k.public
}

func (k *Key) signingKey() (any, error) {
	if k.kind == KindSecret {
		return k.secret, nil
	}
	if k.private == nil {
		return nil, ErrNoSigningKey
	}
	return k.private, nil
}

func ecAlgorithm(c elliptic.Curve) (string, error) {
	switch c {
	case elliptic.P256():
		return jwt.SigningMethodES256.Alg(), nil
	case elliptic.P384():
		return jwt.SigningMethodES384.Alg(), nil
	case elliptic.P521():
		return jwt.SigningMethodES512.Alg(), nil
	default:
		return "", fmt.Errorf("%w: curve %s", ErrUnsupported, c.Params().Name)
	}
}

// LoadKeyFile reads a verification key from disk. See ParseKey.
func LoadKeyFile(path string, passphrase string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jwtx: read key file: %w", err)
	}
	return ParseKey(data, []byte(passphrase))
}

// ParseKey accepts a JWK (JSON object), a PEM public key or certificate, or
// a PEM/OpenSSH private key. Encrypted private keys need a passphrase.
func ParseKey(data []byte, passphrase []byte) (*Key, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoKey
	}
	if trimmed[0] == '{' {
		return ParseJWK(trimmed)
	}

	block, _ := pem.Decode(trimmed)
	if block == nil {
		return nil, errors.New("jwtx: key is neither PEM nor JWK")
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse public key: %w", err)
		}
		return NewPublicKey(pub)
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse RSA public key: %w", err)
		}
		return NewPublicKey(pub)
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse certificate: %w", err)
		}
		return NewPublicKey(cert.PublicKey)
	}

	priv, err := ParsePrivateKey(trimmed, passphrase)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(priv)
}

// ParsePrivateKey decodes PKCS1, PKCS8, SEC1 and OpenSSH private keys,
// including legacy passphrase-encrypted PEM.
func ParsePrivateKey(pemBytes []byte, passphrase []byte) (any, error) {
	priv, err := ssh.ParseRawPrivateKey(pemBytes)
	if err == nil {
		return priv, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, fmt.Errorf("jwtx: parse private key: %w", err)
	}
	if len(passphrase) == 0 {
		return nil, ErrNeedsPassword
	}

	priv, err = ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, passphrase)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decrypt private key: %w", err)
	}
	return priv, nil
}
