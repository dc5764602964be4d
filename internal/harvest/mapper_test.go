package harvest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	t.Run("buckets by first two characters", func(t *testing.T) {
		dir, file := OutputPath("/root", "twitter.com", "/ads.txt")
		require.Equal(t, filepath.Join("/root", "t", "w", "twitter.com"), dir)
		require.Equal(t, "ads.txt", file)
	})

	t.Run("index request maps to index.html", func(t *testing.T) {
		dir, file := OutputPath("/root", "twitter.com", "/")
		require.Equal(t, filepath.Join("/root", "t", "w", "twitter.com"), dir)
		require.Equal(t, "index.html", file)
	})

	t.Run("extensionless basename maps to index.html", func(t *testing.T) {
		dir, file := OutputPath("/root", "twitter.com", "/about")
		require.Equal(t, filepath.Join("/root", "t", "w", "twitter.com"), dir)
		require.Equal(t, "index.html", file)
	})

	t.Run("nested request path keeps its directory", func(t *testing.T) {
		dir, file := OutputPath("/root", "example.org", "/.well-known/security.txt")
		require.Equal(t, filepath.Join("/root", "e", "x", "example.org", ".well-known"), dir)
		require.Equal(t, "security.txt", file)
	})

	t.Run("single character hostname uses underscore bucket", func(t *testing.T) {
		dir, _ := OutputPath("/root", "x", "/ads.txt")
		require.Equal(t, filepath.Join("/root", "x", "_", "x"), dir)
	})

	t.Run("uppercase hostname buckets are lowercased", func(t *testing.T) {
		dir, _ := OutputPath("/root", "Twitter.COM", "/ads.txt")
		require.Equal(t, filepath.Join("/root", "t", "w", "Twitter.COM"), dir)
	})

	t.Run("full file path joins dir and file", func(t *testing.T) {
		path := OutputFilePath("/root", "twitter.com", "/ads.txt")
		require.Equal(t, filepath.Join("/root", "t", "w", "twitter.com", "ads.txt"), path)
	})
}
