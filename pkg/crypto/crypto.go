package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func ComputeHMAC256(toSign []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(toSign)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC256 compares signatures in constant time.
func VerifyHMAC256(toSign []byte, secretKey string, providedSign string) bool {
	return hmac.Equal([]byte(ComputeHMAC256(toSign, secretKey)), []byte(providedSign))
}

func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sha256Key(passphrase string) []byte {
	hash := sha256.Sum256([]byte(passphrase))
	return hash[:]
}

// EncryptString seals str with AES-GCM keyed by sha256(passphrase) and returns nonce||ciphertext as hex.
func EncryptString(str string, passphrase string) (string, error) {
	block, err := aes.NewCipher(sha256Key(passphrase))
	if err != nil {
		return "", fmt.Errorf("EncryptString cipher error: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("EncryptString error: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("EncryptString reader error: %w", err)
	}

	return hex.EncodeToString(gcm.Seal(nonce, nonce, []byte(str), nil)), nil
}

func Decrypt(data []byte, passphrase string) ([]byte, error) {
	block, err := aes.NewCipher(sha256Key(passphrase))
	if err != nil {
		return nil, fmt.Errorf("Decrypt new cipher error: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("Decrypt new gcm error: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("Decrypt ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("Decrypt open gcm error: %w", err)
	}

	return plaintext, nil
}

func DecryptFromHexString(str string, passphrase string) (string, error) {
	if str == "" {
		return "", fmt.Errorf("DecryptFromHexString empty string")
	}

	data, err := hex.DecodeString(str)
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString decode error: %w", err)
	}

	decoded, err := Decrypt(data, passphrase)
	if err != nil {
		return "", fmt.Errorf("DecryptFromHexString decrypt error: %w", err)
	}

	return string(decoded), nil
}

// GenerateNumericCode returns a uniformly random code of n digits.
func GenerateNumericCode(n int) (string, error) {
	code := make([]byte, n)
	for i := range code {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("GenerateNumericCode error: %w", err)
		}
		code[i] = byte('0' + d.Int64())
	}
	return string(code), nil
}

// HashMagicCode stores sign-in codes as bcrypt hashes.
func HashMagicCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("HashMagicCode error: %w", err)
	}
	return string(hashed), nil
}

func VerifyMagicCode(inputCode string, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(inputCode)) == nil
}
