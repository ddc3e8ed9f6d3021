package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRef(t *testing.T) {
	ids := []string{"aa11", "ab22", "bc33"}

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "1", want: "aa11"},
		{ref: "3", want: "bc33"},
		{ref: "0", wantErr: true},
		{ref: "4", wantErr: true},
		{ref: "ab22", want: "ab22"},
		{ref: "b", want: "bc33"},
		{ref: "a", wantErr: true},
		{ref: "zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveRef(tt.ref, ids)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolveRef("a", ids)
	assert.ErrorIs(t, err, errAmbiguous)
}

func TestShortIDAndOrDash(t *testing.T) {
	assert.Equal(t, "12345678", shortID("123456789abc"))
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "-", orDash("  "))
	assert.Equal(t, "x", orDash("x"))
}
