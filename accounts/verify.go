package accounts

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// AlgoPBKDF2SHA256 is the only key-derivation tag currently issued. The tag
// is stored per record so a future variant can coexist with legacy records.
const AlgoPBKDF2SHA256 = "pbkdf2_sha256"

const (
	defaultIterations = 200000
	defaultKeyLength  = 32
	saltLength        = 16
)

// Verify reports whether candidate matches the record's stored derived key.
// Unknown algorithm tags and undecodable records fail closed. The comparison
// is constant-time.
func Verify(rec Record, candidate string) bool {
	if rec.Algo != AlgoPBKDF2SHA256 {
		return false
	}
	salt, err := b64uDecode(rec.Salt)
	if err != nil {
		return false
	}
	expected, err := b64uDecode(rec.Hash)
	if err != nil {
		return false
	}
	iter := rec.Iter
	if iter <= 0 {
		iter = defaultIterations
	}
	dklen := rec.DKLen
	if dklen <= 0 {
		dklen = len(expected)
	}
	got := pbkdf2.Key([]byte(candidate), salt, iter, dklen, sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// Hash derives a fresh record fragment for password, generating a random
// salt. Routes and Filters are left for the caller to fill in.
func Hash(password string) (Record, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return Record{}, err
	}
	dk := pbkdf2.Key([]byte(password), salt, defaultIterations, defaultKeyLength, sha256.New)
	return Record{
		Algo:  AlgoPBKDF2SHA256,
		Salt:  b64uEncode(salt),
		Hash:  b64uEncode(dk),
		Iter:  defaultIterations,
		DKLen: defaultKeyLength,
	}, nil
}

func b64uEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func b64uDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
