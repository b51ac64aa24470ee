package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payproc/internal/validator"
)

func TestValidRoutingNumber_KnownNumbers(t *testing.T) {
	// Real-world routing numbers with valid checksums.
	valid := []string{
		"021000021", // JPMorgan Chase
		"011401533",
		"091000019",
		"122105155",
		"000000000", // degenerate but checksum-correct
	}
	for _, rn := range valid {
		assert.True(t, validator.ValidRoutingNumber(rn), rn)
	}
}

func TestValidRoutingNumber_BadChecksum(t *testing.T) {
	invalid := []string{
		"123456789",
		"021000022",
		"999999999",
	}
	for _, rn := range invalid {
		assert.False(t, validator.ValidRoutingNumber(rn), rn)
	}
}

func TestValidRoutingNumber_Shape(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.False(t, validator.ValidRoutingNumber(""))
	})
	t.Run("too_short", func(t *testing.T) {
		assert.False(t, validator.ValidRoutingNumber("12345678"))
	})
	t.Run("too_long", func(t *testing.T) {
		assert.False(t, validator.ValidRoutingNumber("0210000211"))
	})
	t.Run("non_digit", func(t *testing.T) {
		assert.False(t, validator.ValidRoutingNumber("02100002a"))
		assert.False(t, validator.ValidRoutingNumber("abcdefghi"))
		assert.False(t, validator.ValidRoutingNumber("02100 021"))
	})
	t.Run("unicode_never_panics", func(t *testing.T) {
		assert.False(t, validator.ValidRoutingNumber("٠٢١٠٠٠٠٢١"))
	})
}
