package services

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"hr_payroll/types"
)

const (
	codecKeyLength = 32
	codecIVLength  = aes.BlockSize
)

// SalaryCodec protects the annual salary column at rest. Tokens are
// Base64(IV || AES-256-CBC ciphertext) with PKCS#7 padding.
type SalaryCodec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// NewCodec selects a codec by mode: "legacy" or "random_iv".
func NewCodec(mode, secret string) (SalaryCodec, error) {
	if secret == "" {
		return nil, types.NewAppError(types.CodeInvalidInput, "encryption secret is empty", nil)
	}
	switch mode {
	case "", "legacy":
		return LegacyCodec{secret: secret}, nil
	case "random_iv":
		return RandomIVCodec{secret: secret, rand: rand.Reader}, nil
	}
	return nil, types.NewAppError(types.CodeInvalidInput, fmt.Sprintf("unknown encryption mode %q", mode), nil)
}

// LegacyCodec derives the IV from the secret (MD5), so every value encrypted
// under one secret shares the same IV and equal plaintexts give equal tokens.
// It exists to read and write values already stored that way.
type LegacyCodec struct {
	secret string
}

func NewLegacyCodec(secret string) LegacyCodec {
	return LegacyCodec{secret: secret}
}

func (c LegacyCodec) Encrypt(plaintext string) (string, error) {
	return Encrypt(plaintext, c.secret)
}

func (c LegacyCodec) Decrypt(token string) (string, error) {
	return Decrypt(token, c.secret)
}

// RandomIVCodec draws a fresh IV per encryption. Framing and key derivation
// match LegacyCodec, so it decrypts legacy tokens as well.
type RandomIVCodec struct {
	secret string
	rand   io.Reader
}

func NewRandomIVCodec(secret string) RandomIVCodec {
	return RandomIVCodec{secret: secret, rand: rand.Reader}
}

func (c RandomIVCodec) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, codecIVLength)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}
	return encryptWithIV(plaintext, c.secret, iv)
}

func (c RandomIVCodec) Decrypt(token string) (string, error) {
	return Decrypt(token, c.secret)
}

// Encrypt encrypts plaintext with the secret-derived IV.
func Encrypt(plaintext, secret string) (string, error) {
	return encryptWithIV(plaintext, secret, deriveIV(secret))
}

// Decrypt reverses Encrypt. The IV is read from the token itself.
func Decrypt(token, secret string) (string, error) {
	if token == "" {
		return "", types.NewAppError(types.CodeInvalidInput, "nothing to decrypt", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", types.NewAppError(types.CodeDecryptionFailed, "token is not valid base64", err)
	}
	if len(raw) < codecIVLength+aes.BlockSize || (len(raw)-codecIVLength)%aes.BlockSize != 0 {
		return "", types.NewAppError(types.CodeDecryptionFailed, "token has invalid length", nil)
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	iv, ciphertext := raw[:codecIVLength], raw[codecIVLength:]
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	plain, err = pkcs7Unpad(plain)
	if err != nil {
		return "", types.NewAppError(types.CodeDecryptionFailed, "data corrupted or wrong secret", err)
	}
	if !utf8.Valid(plain) {
		return "", types.NewAppError(types.CodeDecryptionFailed, "data corrupted or wrong secret", nil)
	}
	return string(plain), nil
}

func encryptWithIV(plaintext, secret string, iv []byte) (string, error) {
	if plaintext == "" {
		return "", types.NewAppError(types.CodeInvalidInput, "nothing to encrypt", nil)
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, codecIVLength+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[codecIVLength:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:codecKeyLength]
}

func deriveIV(secret string) []byte {
	sum := md5.Sum([]byte(secret))
	return sum[:codecIVLength]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize {
		return nil, fmt.Errorf("invalid padding size %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding byte")
		}
	}
	return data[:len(data)-n], nil
}
