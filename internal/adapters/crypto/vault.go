package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/mamacare/tracker-service/internal/core/ports"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters matching what the legacy client used to seal the
// vault. Changing any of them breaks decryption of existing vaults.
const (
	scryptN         = 32768
	scryptR         = 8
	scryptP         = 1
	keyLength       = 32
	legacyVaultSalt = "mamacare-profile-vault"
)

// VaultCrypter implements Crypter with AES-256-GCM. Ciphertext is
// base64 encoded with the nonce prepended, the format the legacy vault
// was written in.
type VaultCrypter struct {
	gcm cipher.AEAD
}

// NewVaultCrypter derives the vault key from the passphrase and
// prepares the cipher
func NewVaultCrypter(passphrase string) (*VaultCrypter, error) {
	if passphrase == "" {
		return nil, errors.New("vault passphrase must not be empty")
	}

	key, err := scrypt.Key([]byte(passphrase), []byte(legacyVaultSalt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &VaultCrypter{gcm: gcm}, nil
}

// Encrypt seals plaintext into the vault format
func (c *VaultCrypter) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.gcm.Seal(nonce, nonce, plaintext, nil)
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)))
	base64.StdEncoding.Encode(encoded, sealed)
	return encoded, nil
}

// Decrypt opens a sealed vault blob
func (c *VaultCrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(ciphertext)))
	n, err := base64.StdEncoding.Decode(decoded, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vault blob: %w", err)
	}
	decoded = decoded[:n]

	nonceSize := c.gcm.NonceSize()
	if len(decoded) < nonceSize {
		return nil, errors.New("vault blob too short")
	}

	nonce, sealed := decoded[:nonceSize], decoded[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault blob: %w", err)
	}
	return plaintext, nil
}

// Ensure VaultCrypter implements the interface
var _ ports.Crypter = (*VaultCrypter)(nil)
