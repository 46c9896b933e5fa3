package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripNonCode(t *testing.T) {
	t.Run("line comment is blanked to end of line", func(t *testing.T) {
		got := stripNonCode([]byte("a // gone\nb"))
		assert.Equal(t, "a        \nb", string(got))
	})

	t.Run("block comment is blanked and newlines kept", func(t *testing.T) {
		got := stripNonCode([]byte("a /* x\ny */ b"))
		assert.Equal(t, "a     \n     b", string(got))
	})

	t.Run("literal content is blanked", func(t *testing.T) {
		got := stripNonCode([]byte("A : 'abc' ;"))
		assert.Equal(t, "A :       ;", string(got))
	})

	t.Run("escaped quote does not end the literal", func(t *testing.T) {
		got := stripNonCode([]byte(`A : '\'x' ;`))
		assert.Equal(t, "A :       ;", string(got))
	})

	t.Run("comment markers inside literal are inert", func(t *testing.T) {
		got := stripNonCode([]byte("A : '//' B"))
		assert.Equal(t, "A :      B", string(got))
	})

	t.Run("unterminated literal resyncs at end of line", func(t *testing.T) {
		got := stripNonCode([]byte("A : 'oops\ngrammar G;"))
		assert.Equal(t, "A :      \ngrammar G;", string(got))
	})

	t.Run("unterminated block comment blanks to end of input", func(t *testing.T) {
		got := stripNonCode([]byte("a /* never closed"))
		assert.Equal(t, "a                ", string(got))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("identifiers and punctuation", func(t *testing.T) {
		got := tokenize([]byte("grammar Foo;\nimport A,B ;"))
		assert.Equal(t, []string{"grammar", "Foo", ";", "import", "A", ",", "B", ";"}, got)
	})

	t.Run("underscores and digits in identifiers", func(t *testing.T) {
		got := tokenize([]byte("My_Grammar2 = x9"))
		assert.Equal(t, []string{"My_Grammar2", "=", "x9"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, tokenize(nil))
	})
}
