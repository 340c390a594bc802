package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestEnvSnapshot_CaseInsensitiveLookup(t *testing.T) {
	snap := domain.NewEnvSnapshot([]string{"Path=/usr/bin"})

	v, ok := snap.Get("PATH")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin", v)

	v, ok = snap.Get("path")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin", v)
}

func TestEnvSnapshot_SetKeepsFirstSpelling(t *testing.T) {
	snap := domain.NewEnvSnapshot(nil)
	snap.Set("Path", "/usr/bin")
	snap.Set("PATH", "/opt/bin")

	v, ok := snap.Get("path")
	require.True(t, ok)
	assert.Equal(t, "/opt/bin", v)

	// Environ renders the spelling of the first writer.
	assert.Equal(t, []string{"Path=/opt/bin"}, snap.Environ())
}

func TestEnvSnapshot_Clone(t *testing.T) {
	snap := domain.NewEnvSnapshot([]string{"A=1"})
	clone := snap.Clone()
	clone.Set("A", "2")
	clone.Set("B", "3")

	v, _ := snap.Get("A")
	assert.Equal(t, "1", v)
	_, ok := snap.Get("B")
	assert.False(t, ok)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestEnvSnapshot_MergeAssignments(t *testing.T) {
	t.Run("captured values win over base", func(t *testing.T) {
		snap := domain.NewEnvSnapshot([]string{"PATH=/usr/bin", "HOME=/home/u"})
		snap.MergeAssignments("PATH=C:\\VC\\bin\nINCLUDE=C:\\VC\\include\n")

		v, _ := snap.Get("PATH")
		assert.Equal(t, "C:\\VC\\bin", v)
		v, _ = snap.Get("INCLUDE")
		assert.Equal(t, "C:\\VC\\include", v)
		v, _ = snap.Get("HOME")
		assert.Equal(t, "/home/u", v)
	})

	t.Run("is idempotent", func(t *testing.T) {
		dump := "A=1\r\nB=two=three\r\n"
		snap := domain.NewEnvSnapshot(nil)
		snap.MergeAssignments(dump)
		first := snap.Environ()

		snap.MergeAssignments(dump)
		assert.Equal(t, first, snap.Environ())
	})

	t.Run("splits on the first equals sign only", func(t *testing.T) {
		snap := domain.NewEnvSnapshot(nil)
		snap.MergeAssignments("LIB=C:\\a;C:\\b=c")

		v, ok := snap.Get("LIB")
		require.True(t, ok)
		assert.Equal(t, "C:\\a;C:\\b=c", v)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		snap := domain.NewEnvSnapshot(nil)
		snap.MergeAssignments("no equals here\n=value without name\n   =also empty\n\nA=1")

		assert.Equal(t, 1, snap.Len())
		v, _ := snap.Get("A")
		assert.Equal(t, "1", v)
	})

	t.Run("strips carriage returns from dos dumps", func(t *testing.T) {
		snap := domain.NewEnvSnapshot(nil)
		snap.MergeAssignments("TMP=C:\\Temp\r\n")

		v, ok := snap.Get("TMP")
		require.True(t, ok)
		assert.Equal(t, "C:\\Temp", v)
	})
}

func TestEnvSnapshot_EnvironSorted(t *testing.T) {
	snap := domain.NewEnvSnapshot([]string{"B=2", "A=1", "C=3"})
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, snap.Environ())
}
