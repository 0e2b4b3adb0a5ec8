package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"PRIMARY", RolePrimary},
		{"primary", RolePrimary},
		{"USER", RolePrimary},
		{" RELATIVE ", RoleRelative},
		{"relative", RoleRelative},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseRole_Invalid(t *testing.T) {
	for _, in := range []string{"", "ADMIN", "owner"} {
		_, err := ParseRole(in)
		assert.ErrorIs(t, err, ErrInvalidRole, in)
	}
	assert.False(t, Role("ADMIN").Valid())
}

func TestParseDisease(t *testing.T) {
	d, err := ParseDisease("parkinsons")
	require.NoError(t, err)
	assert.Equal(t, DiseaseParkinsons, d)
	assert.Equal(t, "parkinsons", d.Slug())

	_, err = ParseDisease("flu")
	assert.ErrorIs(t, err, ErrInvalidDisease)
}

func TestAllDiseases_HaveDistinctSlugs(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range AllDiseases {
		assert.False(t, seen[d.Slug()], d)
		seen[d.Slug()] = true
	}
	assert.Len(t, seen, 4)
}
