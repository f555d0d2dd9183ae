package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashers(t *testing.T) map[string]Hasher {
	t.Helper()
	sha, err := NewHasher(AlgorithmSHA256, "", 0)
	require.NoError(t, err)
	kdf, err := NewHasher(AlgorithmPBKDF2, "pepper", 1000)
	require.NoError(t, err)
	return map[string]Hasher{AlgorithmSHA256: sha, AlgorithmPBKDF2: kdf}
}

func TestHashIsDeterministic(t *testing.T) {
	passwords := []string{"", "password1", "admin123", "ünïcødé-pässwörd", "a very long passphrase with spaces"}

	for name, h := range hashers(t) {
		for _, p := range passwords {
			assert.Equal(t, h.Hash(p), h.Hash(p), name)
			assert.True(t, h.Verify(p, h.Hash(p)), name)
		}
	}
}

func TestVerifyRejectsOtherPasswords(t *testing.T) {
	for name, h := range hashers(t) {
		digest := h.Hash("password1")
		assert.False(t, h.Verify("password2", digest), name)
		assert.False(t, h.Verify("Password1", digest), name)
		assert.False(t, h.Verify("password1", ""), name)
	}
}

func TestSHA256MatchesLegacyDigest(t *testing.T) {
	// hex(sha256("admin123")), the digest format of the seeded accounts.
	assert.Equal(t,
		"240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
		SHA256Hasher{}.Hash("admin123"),
	)
}

func TestPepperChangesDigest(t *testing.T) {
	a := PBKDF2Hasher{Pepper: []byte("one"), Iterations: 1000}
	b := PBKDF2Hasher{Pepper: []byte("two"), Iterations: 1000}
	assert.NotEqual(t, a.Hash("password1"), b.Hash("password1"))
}

func TestNewHasherRejectsUnknown(t *testing.T) {
	_, err := NewHasher("md5", "", 0)
	assert.Error(t, err)

	_, err = NewHasher(AlgorithmPBKDF2, "pepper", 0)
	assert.Error(t, err)
}
