package hash_test

import (
	"testing"

	"github.com/MyagmarsurenMike/e-proof/internal/core/service/hash"
	"github.com/stretchr/testify/assert"
)

func TestSum_KnownDigest(t *testing.T) {
	// SHA-256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	assert.Equal(t, want, hash.Sum([]byte("hello")))
}

func TestSum_Deterministic(t *testing.T) {
	content := []byte("the same bytes every time")

	first := hash.Sum(content)
	second := hash.Sum(content)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestSum_DifferentContentDifferentDigest(t *testing.T) {
	assert.NotEqual(t, hash.Sum([]byte("a")), hash.Sum([]byte("b")))
}

func TestSum_EmptyInput(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	assert.Equal(t, want, hash.Sum(nil))
	assert.Equal(t, want, hash.Sum([]byte{}))
}
