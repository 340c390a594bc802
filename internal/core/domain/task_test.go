package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }\n"), 0o644))
	return path
}

func TestCompilerTask_SetSources(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.cpp")

	t.Run("strict accepts existing files", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetSources([]string{src}))
		assert.Equal(t, []string{src}, task.Sources())
	})

	t.Run("strict rejects missing files and keeps the previous value", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetSources([]string{src}))

		err := task.SetSources([]string{filepath.Join(dir, "nope.cpp")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Equal(t, []string{src}, task.Sources())
	})

	t.Run("strict rejects directories", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		err := task.SetSources([]string{dir})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("lenient skips filesystem checks", func(t *testing.T) {
		task := domain.NewCompilerTask(false)
		require.NoError(t, task.SetSources([]string{filepath.Join(dir, "missing.cpp")}))
	})

	t.Run("illegal characters are rejected in both modes", func(t *testing.T) {
		for _, strict := range []bool{true, false} {
			task := domain.NewCompilerTask(strict)
			err := task.SetSources([]string{`bad<name>.cpp`})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		}
	})

	t.Run("relative paths are stored absolute", func(t *testing.T) {
		task := domain.NewCompilerTask(false)
		require.NoError(t, task.SetSources([]string{"main.cpp"}))
		assert.True(t, filepath.IsAbs(task.Sources()[0]))
	})
}

func TestCompilerTask_SetIncludePaths(t *testing.T) {
	dir := t.TempDir()

	t.Run("strict accepts existing directories", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetIncludePaths([]string{dir}))
	})

	t.Run("strict rejects files and missing paths", func(t *testing.T) {
		file := writeFile(t, dir, "header.h")
		task := domain.NewCompilerTask(true)

		require.Error(t, task.SetIncludePaths([]string{file}))
		require.Error(t, task.SetIncludePaths([]string{filepath.Join(dir, "gone")}))
		assert.Empty(t, task.IncludePaths())
	})
}

func TestCompilerTask_SetLibraries(t *testing.T) {
	libDir := t.TempDir()
	writeFile(t, libDir, "libfoo.a")

	t.Run("strict resolves names against configured library paths", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetLibraryPaths([]string{libDir}))
		require.NoError(t, task.SetLibraries([]string{"libfoo.a"}))
	})

	t.Run("strict rejects unresolvable names", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetLibraryPaths([]string{libDir}))

		err := task.SetLibraries([]string{"libbar.a"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Empty(t, task.Libraries())
	})

	t.Run("resolution uses paths configured at call time", func(t *testing.T) {
		// No library paths yet, so no name can resolve.
		task := domain.NewCompilerTask(true)
		require.Error(t, task.SetLibraries([]string{"libfoo.a"}))
	})
}

func TestCompilerTask_SetIntermediateDir(t *testing.T) {
	t.Run("requires absolute path regardless of strictness", func(t *testing.T) {
		for _, strict := range []bool{true, false} {
			task := domain.NewCompilerTask(strict)
			err := task.SetIntermediateDir("build/obj")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		}
	})

	t.Run("accepts absolute path without existence check", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		dir := filepath.Join(t.TempDir(), "does-not-exist-yet")
		require.NoError(t, task.SetIntermediateDir(dir))
		assert.Equal(t, dir, task.IntermediateDir())
	})
}

func TestCompilerTask_SetOutputName(t *testing.T) {
	task := domain.NewCompilerTask(false)

	require.NoError(t, task.SetOutputName("mylib"))
	assert.Equal(t, "mylib", task.OutputName())

	require.Error(t, task.SetOutputName("sub/mylib"))
	require.Error(t, task.SetOutputName(`my|lib`))
	assert.Equal(t, "mylib", task.OutputName())
}

func TestCompilerTask_SetOutputDir(t *testing.T) {
	dir := t.TempDir()

	t.Run("strict requires an existing directory", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetOutputDir(dir))
		require.Error(t, task.SetOutputDir(filepath.Join(dir, "missing")))
		assert.Equal(t, dir, task.OutputDir())
	})

	t.Run("lenient accepts missing directories", func(t *testing.T) {
		task := domain.NewCompilerTask(false)
		require.NoError(t, task.SetOutputDir(filepath.Join(dir, "missing")))
	})
}

func TestCompilerTask_AccessorsReturnClones(t *testing.T) {
	task := domain.NewCompilerTask(false)
	task.SetCompilerFlags([]string{"-Wall"})

	flags := task.CompilerFlags()
	flags[0] = "-Werror"
	assert.Equal(t, []string{"-Wall"}, task.CompilerFlags())

	in := []string{"-O3"}
	task.SetCompilerFlags(in)
	in[0] = "-O0"
	assert.Equal(t, []string{"-O3"}, task.CompilerFlags())
}

func TestCompilerTask_Validate(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "lib.cpp")

	valid := func() *domain.CompilerTask {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetSources([]string{src}))
		require.NoError(t, task.SetIntermediateDir(filepath.Join(dir, "obj")))
		require.NoError(t, task.SetOutputDir(dir))
		require.NoError(t, task.SetOutputName("lib"))
		task.SetAssemblyType(domain.StaticLibrary)
		return task
	}

	require.NoError(t, valid().Validate())

	t.Run("missing sources", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetIntermediateDir(filepath.Join(dir, "obj")))
		require.NoError(t, task.SetOutputDir(dir))
		require.NoError(t, task.SetOutputName("lib"))
		task.SetAssemblyType(domain.Executable)
		assert.ErrorIs(t, task.Validate(), domain.ErrConfiguration)
	})

	t.Run("unspecified assembly type", func(t *testing.T) {
		task := valid()
		task.SetAssemblyType(domain.Unspecified)
		assert.ErrorIs(t, task.Validate(), domain.ErrConfiguration)
	})

	t.Run("missing output name", func(t *testing.T) {
		task := domain.NewCompilerTask(true)
		require.NoError(t, task.SetSources([]string{src}))
		require.NoError(t, task.SetIntermediateDir(filepath.Join(dir, "obj")))
		require.NoError(t, task.SetOutputDir(dir))
		task.SetAssemblyType(domain.Executable)
		assert.ErrorIs(t, task.Validate(), domain.ErrConfiguration)
	})
}
