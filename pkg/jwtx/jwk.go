package jwtx

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// JWK is a single JSON Web Key (RFC 7517). Only the members needed to build
// a verification key are decoded; private members are ignored.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`

	// RSA
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`

	// OKP and EC
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`

	// oct
	K string `json:"k,omitempty"`
}

// ParseJWK decodes a JWK JSON document into a Key carrying the JWK's kid.
func ParseJWK(data []byte) (*Key, error) {
	var j JWK
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("jwtx: decode jwk: %w", err)
	}
	return j.Key()
}

// Key converts the JWK into a verification Key.
func (j JWK) Key() (*Key, error) {
	var (
		k   *Key
		err error
	)

	switch j.Kty {
	case "oct":
		var secret []byte
		secret, err = b64(j.K)
		if err == nil {
			k, err = NewSecretKey(secret)
		}

	case "RSA":
		var nb, eb []byte
		if nb, err = b64(j.N); err != nil {
			break
		}
		if eb, err = b64(j.E); err != nil {
			break
		}
		e := new(big.Int).SetBytes(eb)
		if !e.IsInt64() || e.Int64() < 2 {
			err = errors.New("jwtx: invalid RSA exponent")
			break
		}
		k, err = NewPublicKey(&rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: int(e.Int64())})

	case "OKP":
		if j.Crv != "Ed25519" {
			err = fmt.Errorf("%w: OKP curve %s", ErrUnsupported, j.Crv)
			break
		}
		var xb []byte
		if xb, err = b64(j.X); err != nil {
			break
		}
		if len(xb) != ed25519.PublicKeySize {
			err = errors.New("jwtx: invalid Ed25519 public key size")
			break
		}
		k, err = NewPublicKey(ed25519.PublicKey(xb))

	case "EC":
		var (
			curve elliptic.Curve
			point ecdh.Curve
		)
		switch j.Crv {
		case "P-256":
			curve, point = elliptic.P256(), ecdh.P256()
		case "P-384":
			curve, point = elliptic.P384(), ecdh.P384()
		case "P-521":
			curve, point = elliptic.P521(), ecdh.P521()
		default:
			err = fmt.Errorf("%w: EC curve %s", ErrUnsupported, j.Crv)
		}
		if err != nil {
			break
		}
		var xb, yb []byte
		if xb, err = b64(j.X); err != nil {
			break
		}
		if yb, err = b64(j.Y); err != nil {
			break
		}
		if err = checkPoint(point, (curve.Params().BitSize+7)/8, xb, yb); err != nil {
			break
		}
		k, err = NewPublicKey(&ecdsa.PublicKey{
			Curve: curve,
			X:     new(big.Int).SetBytes(xb),
			Y:     new(big.Int).SetBytes(yb),
		})

	default:
		err = fmt.Errorf("%w: kty %q", ErrUnsupported, j.Kty)
	}

	if err != nil {
		return nil, err
	}
	return k.WithKID(j.Kid), nil
}

// checkPoint rejects coordinates that are not a point on c by decoding them
// as an uncompressed SEC 1 public key.
func checkPoint(c ecdh.Curve, size int, x, y []byte) error {
	if len(x) > size || len(y) > size {
		return ErrInvalidPoint
	}
	buf := make([]byte, 1+2*size)
	buf[0] = 4
	copy(buf[1+size-len(x):1+size], x)
	copy(buf[1+2*size-len(y):], y)

	if _, err := c.NewPublicKey(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return nil
}

func b64(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("jwtx: missing jwk member")
	}
	return base64.RawURLEncoding.DecodeString(s)
}
