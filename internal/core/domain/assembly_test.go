package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestParseAssemblyType(t *testing.T) {
	for input, want := range map[string]domain.AssemblyType{
		"shared":     domain.SharedLibrary,
		"dll":        domain.SharedLibrary,
		"static":     domain.StaticLibrary,
		"lib":        domain.StaticLibrary,
		"executable": domain.Executable,
		"exe":        domain.Executable,
		"binary":     domain.Executable,
	} {
		got, err := domain.ParseAssemblyType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := domain.ParseAssemblyType("plugin")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
