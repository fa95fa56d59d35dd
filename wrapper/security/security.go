// Package security wraps a store.Store with AES-256-GCM encryption at rest,
// keyed by a passphrase stretched through scrypt.
package security

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/scrypt"

	"github.com/cachekit/cachesemantics/store"
)

const (
	scryptN   = 32768
	scryptR   = 8
	scryptP   = 1
	keyLength = 32
	nonceSize = 12
)

// Store wraps a store.Store, encrypting values with AES-256-GCM before they
// reach the inner store and decrypting them on the way out.
type Store struct {
	inner store.Store
	gcm   cipher.AEAD
}

// New derives an AES-256 key from passphrase via scrypt and wraps inner.
func New(inner store.Store, passphrase string) (*Store, error) {
	gcm, err := initEncryption(passphrase)
	if err != nil {
		return nil, err
	}
	return &Store{inner: inner, gcm: gcm}, nil
}

func initEncryption(passphrase string) (cipher.AEAD, error) {
	salt := sha256.Sum256([]byte("cachesemantics-security-salt-v1"))
	key, err := scrypt.Key([]byte(passphrase), salt[:], scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("security store: key derivation failed: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("security store: cipher init failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("security store: GCM init failed: %w", err)
	}
	return gcm, nil
}

func (s *Store) encrypt(data []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("security store: nonce generation failed: %w", err)
	}
	return s.gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *Store) decrypt(data []byte) ([]byte, error) {
	if len(data) < nonceSize {
		return nil, fmt.Errorf("security store: ciphertext too short")
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("security store: decrypt failed: %w", err)
	}
	return plaintext, nil
}

// Get decrypts the value returned by the inner store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	plaintext, err := s.decrypt(data)
	if err != nil {
		return nil, false, err
	}
	return plaintext, true, nil
}

// Set encrypts data before passing it to the inner store.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	ciphertext, err := s.encrypt(data)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, ciphertext, ttl)
}

// Delete removes key from the inner store.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

var _ store.Store = (*Store)(nil)
