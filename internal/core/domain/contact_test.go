package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain digits", "15550001111", "15550001111"},
		{"leading plus", "+15550001111", "15550001111"},
		{"formatted", "+1 (555) 000-1111", "15550001111"},
		{"dots", "555.000.1111", "5550001111"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeAddress(tt.input))
		})
	}
}

func TestNormalizeAddressIdempotent(t *testing.T) {
	once := domain.NormalizeAddress("+49 (160) 555-0199")
	twice := domain.NormalizeAddress(once)
	assert.Equal(t, once, twice)
}

func TestEpochMillis(t *testing.T) {
	assert.Equal(t, int64(1700000000000), domain.EpochMillis(1700000000))
	assert.Equal(t, int64(0), domain.EpochMillis(0))
	assert.Equal(t, int64(1000), domain.EpochMillis(1))
}
