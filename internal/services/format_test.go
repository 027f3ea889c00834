package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLargeNumber(t *testing.T) {
	assert.Equal(t, "1.2B", FormatLargeNumber(1_234_000_000))
	assert.Equal(t, "45.6M", FormatLargeNumber(45_600_000))
	assert.Equal(t, "7.9K", FormatLargeNumber(7_890))
	assert.Equal(t, "999", FormatLargeNumber(999.4))
	assert.Equal(t, "0", FormatLargeNumber(0))
	assert.Equal(t, "1.0K", FormatLargeNumber(1_000))
}
