package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	t.Run("Success_HashAndCompare", func(t *testing.T) {
		hash, err := svc.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.True(t, svc.ComparePassword("correct horse battery staple", hash))
	})

	t.Run("Success_UniqueSalts", func(t *testing.T) {
		first, err := svc.HashPassword("same-password")
		require.NoError(t, err)
		second, err := svc.HashPassword("same-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		hash, err := svc.HashPassword("right-password")
		require.NoError(t, err)

		assert.False(t, svc.ComparePassword("wrong-password", hash))
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		assert.False(t, svc.ComparePassword("any-password", "not-a-valid-hash"))
		assert.False(t, svc.ComparePassword("any-password", ""))
	})
}
