// Package crypto holds the shared-secret cipher used for the replay Key header.
//
// Values are AES in ECB mode with PKCS#7 padding, base64 encoded with the
// standard alphabet. That is what existing browser clients produce, so the
// mode cannot change without breaking them.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/layer-3/aio/core"
)

// AESCipher encrypts and decrypts replay keys
type AESCipher struct {
	block cipher.Block
}

// NewAESCipher creates a cipher from a 16, 24 or 32 byte key
func NewAESCipher(key []byte) (*AESCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create aes cipher: %w", err)
	}
	return &AESCipher{block: block}, nil
}

// Encrypt returns the base64 ciphertext of plaintext
func (c *AESCipher) Encrypt(plaintext string) string {
	bs := c.block.BlockSize()
	data := pad([]byte(plaintext), bs)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		c.block.Encrypt(out[i:i+bs], data[i:i+bs])
	}
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt. Any malformed input yields core.ErrDecryptFailed.
func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrDecryptFailed, err)
	}

	bs := c.block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", core.ErrDecryptFailed, len(data))
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		c.block.Decrypt(out[i:i+bs], data[i:i+bs])
	}

	plain, ok := unpad(out, bs)
	if !ok {
		return "", fmt.Errorf("%w: bad padding", core.ErrDecryptFailed)
	}
	return string(plain), nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, bool) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
