package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/memberauth/pkg/password"
)

func TestMD5Hasher(t *testing.T) {
	t.Parallel()
	h := password.MD5Hasher{}

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.Equal(t, "8fe4c11451281c094a6578e6ddbf5eed", hash)

	assert.NoError(t, h.Compare(hash, "pw"))
	assert.ErrorIs(t, h.Compare(hash, "bad"), password.ErrMismatch)
	assert.ErrorIs(t, h.Compare("", "pw"), password.ErrMismatch)
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()
	h := password.BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)

	assert.NoError(t, h.Compare(hash, "pw"))
	assert.ErrorIs(t, h.Compare(hash, "bad"), password.ErrMismatch)
	assert.ErrorIs(t, h.Compare("not-a-bcrypt-hash", "pw"), password.ErrMismatch)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestNew(t *testing.T) {
	t.Parallel()

	h, err := password.New("md5")
	require.NoError(t, err)
	assert.IsType(t, password.MD5Hasher{}, h)

	h, err = password.New("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, password.BcryptHasher{}, h)

	_, err = password.New("sha1")
	assert.Error(t, err)
}
