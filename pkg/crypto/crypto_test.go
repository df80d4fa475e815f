package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAndVerifyHMAC256(t *testing.T) {
	sig := ComputeHMAC256([]byte("payload"), "secret")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, ComputeHMAC256([]byte("payload"), "secret"))
	assert.NotEqual(t, sig, ComputeHMAC256([]byte("payload"), "other"))

	assert.True(t, VerifyHMAC256([]byte("payload"), "secret", sig))
	assert.False(t, VerifyHMAC256([]byte("tampered"), "secret", sig))
}

func TestSha256Hex(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Sha256Hex(nil))
}

func TestEncryptStringAndDecrypt(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"imap password", "s3cr3t-p@ss"},
		{"oauth token", strings.Repeat("ya29.token-", 40)},
		{"unicode", "geslo-čšž"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted, err := EncryptString(tt.plaintext, "passphrase")
			require.NoError(t, err)
			assert.NotEqual(t, tt.plaintext, encrypted)

			decrypted, err := DecryptFromHexString(encrypted, "passphrase")
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}

	t.Run("nonce makes ciphertexts differ", func(t *testing.T) {
		a, err := EncryptString("same", "passphrase")
		require.NoError(t, err)
		b, err := EncryptString("same", "passphrase")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestDecryptFromHexString_Errors(t *testing.T) {
	_, err := DecryptFromHexString("", "passphrase")
	assert.Error(t, err)

	_, err = DecryptFromHexString("zz-not-hex", "passphrase")
	assert.Error(t, err)

	_, err = DecryptFromHexString("abcd", "passphrase")
	assert.Error(t, err)

	encrypted, err := EncryptString("value", "passphrase")
	require.NoError(t, err)
	_, err = DecryptFromHexString(encrypted, "wrong-passphrase")
	assert.Error(t, err)
}

func TestMagicCode(t *testing.T) {
	code, err := GenerateNumericCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}

	hash, err := HashMagicCode(code)
	require.NoError(t, err)
	assert.True(t, VerifyMagicCode(code, hash))
	assert.False(t, VerifyMagicCode("000000x", hash))
}
