package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	envelopeVersion = 1
	envelopeKDF     = "argon2id"

	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32 // AES-256
	saltLen      = 16
)

// Envelope is the on-disk form of a sealed export.
type Envelope struct {
	Version int    `json:"version"`
	KDF     string `json:"kdf"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// Seal encrypts plain with a key derived from passphrase using Argon2id and
// AES-256-GCM. The result is a JSON envelope.
func Seal(plain []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.Join(ErrFailedToSeal, ErrEmptyPassphrase)
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Join(ErrFailedToSeal, err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, errors.Join(ErrFailedToSeal, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrFailedToSeal, err)
	}

	env := Envelope{
		Version: envelopeVersion,
		KDF:     envelopeKDF,
		Salt:    salt,
		Nonce:   nonce,
		Data:    gcm.Seal(nil, nonce, plain, nil),
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, errors.Join(ErrFailedToSeal, err)
	}
	return out, nil
}

// Open reverses Seal. A wrong passphrase and a tampered envelope both fail
// with ErrFailedToOpen.
func Open(sealed []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.Join(ErrFailedToOpen, ErrEmptyPassphrase)
	}

	var env Envelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return nil, errors.Join(ErrFailedToOpen, ErrUnsupportedEnvelope, err)
	}
	if env.Version != envelopeVersion || env.KDF != envelopeKDF {
		return nil, errors.Join(ErrFailedToOpen, ErrUnsupportedEnvelope,
			fmt.Errorf("version %d kdf %q", env.Version, env.KDF))
	}
	if len(env.Salt) != saltLen {
		return nil, errors.Join(ErrFailedToOpen, ErrUnsupportedEnvelope, errors.New("bad salt length"))
	}

	gcm, err := newGCM(passphrase, env.Salt)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	if len(env.Nonce) != gcm.NonceSize() {
		return nil, errors.Join(ErrFailedToOpen, ErrUnsupportedEnvelope, errors.New("bad nonce length"))
	}

	plain, err := gcm.Open(nil, env.Nonce, env.Data, nil)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	return plain, nil
}

// IsSealed reports whether data looks like a Seal envelope.
func IsSealed(data []byte) bool {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return env.KDF == envelopeKDF && len(env.Salt) > 0 && len(env.Data) > 0
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
