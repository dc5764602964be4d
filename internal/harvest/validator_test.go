package harvest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidHostLine(t *testing.T) {
	t.Run("accepts plain hostnames", func(t *testing.T) {
		host, ok := ValidHostLine("example.com")
		require.True(t, ok)
		require.Equal(t, "example.com", host)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		host, ok := ValidHostLine("  valid-host.org\t")
		require.True(t, ok)
		require.Equal(t, "valid-host.org", host)
	})

	t.Run("rejects blank lines", func(t *testing.T) {
		_, ok := ValidHostLine("   \t ")
		require.False(t, ok)
	})

	t.Run("rejects comments", func(t *testing.T) {
		_, ok := ValidHostLine("# a comment")
		require.False(t, ok)
		_, ok = ValidHostLine("   #indented comment")
		require.False(t, ok)
	})

	t.Run("rejects single labels", func(t *testing.T) {
		_, ok := ValidHostLine("localhost")
		require.False(t, ok)
	})

	t.Run("rejects lines without a leading label", func(t *testing.T) {
		_, ok := ValidHostLine("bad host")
		require.False(t, ok)
	})

	t.Run("stays permissive beyond the shape check", func(t *testing.T) {
		// The validator intentionally errs toward over-inclusion.
		host, ok := ValidHostLine("weird.com:8080/nonsense")
		require.True(t, ok)
		require.Equal(t, "weird.com:8080/nonsense", host)
	})
}
