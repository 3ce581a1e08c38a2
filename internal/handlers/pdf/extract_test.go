package pdf

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseContentStream(t *testing.T) {
	t.Run("Tj and TJ operators", func(t *testing.T) {
		stream := []byte("BT\n/F1 12 Tf\n(Hello ) Tj\n[(wor) -20 (ld)] TJ\nET")
		assert.Equal(t, "Hello world", parseContentStream(stream))
	})

	t.Run("T* inserts line break", func(t *testing.T) {
		stream := []byte("(first) Tj\nT*\n(second) Tj")
		assert.Equal(t, "first\nsecond", parseContentStream(stream))
	})

	t.Run("quote operator starts new line", func(t *testing.T) {
		stream := []byte("(alpha) Tj\n(beta) '")
		assert.Equal(t, "alpha\nbeta", parseContentStream(stream))
	})

	t.Run("Td adds word spacing", func(t *testing.T) {
		stream := []byte("(left) Tj\n10 0 Td\n(right) Tj")
		assert.Equal(t, "left right", parseContentStream(stream))
	})

	t.Run("empty stream", func(t *testing.T) {
		assert.Empty(t, parseContentStream(nil))
		assert.Empty(t, parseContentStream([]byte("q 1 0 0 1 0 0 cm Q")))
	})
}

func TestLiteralText(t *testing.T) {
	stream := []byte("BT (one) Tj ET\nBT (two) Tj ET")
	assert.Equal(t, "one two", literalText(stream))
}

func TestDecodeStringLiteral(t *testing.T) {
	assert.Equal(t, "a(b)c", decodeStringLiteral([]byte(`a\(b\)c`)))
	assert.Equal(t, "tab\there", decodeStringLiteral([]byte(`tab\there`)))
	assert.Equal(t, "back\\slash", decodeStringLiteral([]byte(`back\\slash`)))
	// Octal escape: \040 is a space.
	assert.Equal(t, "a b", decodeStringLiteral([]byte(`a\040b`)))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Title line", firstLine("\n  Title line\nbody"))
	assert.Empty(t, firstLine("   \n  \n"))
}

func TestFirstLineTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 300)
	title := firstLine(long)
	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 200, utf8.RuneCountInString(title))
}
