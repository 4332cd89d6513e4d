package shortener_test

import (
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keeps simple url", "https://example.com/path", "https://example.com/path"},
		{"keeps case", "HTTPS://Example.COM/Path", "HTTPS://Example.COM/Path"},
		{"keeps explicit default port", "http://example.com:80/a", "http://example.com:80/a"},
		{"keeps trailing slash", "https://example.com/a/", "https://example.com/a/"},
		{"keeps escaped slash", "https://example.com/a%2Fb/", "https://example.com/a%2Fb/"},
		{"keeps fragment", "https://example.com/docs/#install", "https://example.com/docs/#install"},
		{"keeps empty path", "https://example.com", "https://example.com"},
		{"keeps query", "https://example.com/a?b=1&c=2", "https://example.com/a?b=1&c=2"},
		{"trims surrounding whitespace", "  https://example.com/a  ", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shortener.NormalizeURL(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Invalid(t *testing.T) {
	inputs := map[string]string{
		"empty":          "",
		"relative":       "/just/a/path",
		"no scheme":      "example.com/a",
		"ftp scheme":     "ftp://example.com/file",
		"missing host":   "https:///path",
		"unparseable":    "http://[::1",
		"javascript uri": "javascript:alert(1)",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := shortener.NormalizeURL(input)

			assert.ErrorIs(t, err, shortener.ErrInvalidInput)
		})
	}
}

func TestHashURL(t *testing.T) {
	t.Run("is deterministic hex sha256", func(t *testing.T) {
		h := shortener.HashURL("https://example.com/")

		assert.Len(t, h, 64)
		assert.Equal(t, h, shortener.HashURL("https://example.com/"))
		assert.NotEqual(t, h, shortener.HashURL("https://example.com/other"))
	})

	t.Run("matches known digest", func(t *testing.T) {
		assert.Equal(t,
			"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
			shortener.HashURL("hello"),
		)
	})
}

func TestCandidateCode(t *testing.T) {
	const u = "https://example.com/"

	t.Run("level zero is the digest prefix", func(t *testing.T) {
		code := shortener.CandidateCode(u, 0)

		assert.Len(t, string(code), shortener.CodeLength)
		assert.Equal(t, shortener.HashURL(u)[:shortener.CodeLength], string(code))
	})

	t.Run("each level appends one salt", func(t *testing.T) {
		assert.Equal(t, shortener.HashURL(u + "|collision")[:7], string(shortener.CandidateCode(u, 1)))
		assert.Equal(t, shortener.HashURL(u + "|collision|collision")[:7], string(shortener.CandidateCode(u, 2)))
	})

	t.Run("levels produce distinct codes", func(t *testing.T) {
		seen := map[shortener.Code]bool{}
		for level := range 5 {
			seen[shortener.CandidateCode(u, level)] = true
		}

		assert.Len(t, seen, 5)
	})

	t.Run("codes are lowercase hex", func(t *testing.T) {
		assert.Regexp(t, `^[0-9a-f]{7}$`, string(shortener.CandidateCode(u, 0)))
	})
}
