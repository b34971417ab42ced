package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/supportbrain/backend/internal/infrastructure/config"
)

const keySize = 32

// EncryptionKey AES-256-GCM key for integration credentials at rest
type EncryptionKey struct {
	keyPath string
	key     []byte
}

// NewEncryptionKey loads the key at keyPath, generating it on first use
func NewEncryptionKey(keyPath string) (*EncryptionKey, error) {
	ek := &EncryptionKey{
		keyPath: keyPath,
	}

	if err := ek.loadOrGenerateKey(); err != nil {
		return nil, fmt.Errorf("failed to load or generate key: %w", err)
	}

	return ek, nil
}

// NewEncryptionKeyFromConfig wire provider
func NewEncryptionKeyFromConfig(cfg *config.TenantConfig) (*EncryptionKey, error) {
	return NewEncryptionKey(cfg.KeyPath)
}

func (ek *EncryptionKey) loadOrGenerateKey() error {
	if data, err := os.ReadFile(ek.keyPath); err == nil {
		if len(data) != keySize {
			return fmt.Errorf("key file %s has %d bytes, want %d", ek.keyPath, len(data), keySize)
		}
		ek.key = data
		return nil
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(ek.keyPath), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	// owner read/write only
	if err := os.WriteFile(ek.keyPath, key, 0600); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	ek.key = key
	return nil
}

func (ek *EncryptionKey) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(ek.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// Encrypt returns base64(nonce || ciphertext)
func (ek *EncryptionKey) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aesGCM, err := ek.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt
// Values that are not valid ciphertext are returned as-is so rows seeded in plain text keep working.
func (ek *EncryptionKey) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return ciphertext, nil
	}

	aesGCM, err := ek.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(data) < nonceSize {
		return ciphertext, nil
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return ciphertext, nil
	}

	return string(plaintext), nil
}
