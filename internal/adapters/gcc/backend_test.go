package gcc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/gcc"
	"go.trai.ch/forge/internal/core/domain"
)

// fakeInstall lays out <root>/bin/g++ and returns the root.
func fakeInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "g++"), []byte("#!/bin/sh\n"), 0o755))
	return root
}

func TestBackend_Discover(t *testing.T) {
	backend := gcc.NewBackend()

	t.Run("finds releases behind home variables", func(t *testing.T) {
		root13 := fakeInstall(t)
		root11 := fakeInstall(t)
		base := domain.NewEnvSnapshot([]string{
			"GCC13_HOME=" + root13,
			"GCC11_HOME=" + root11,
			"GCC14_HOME=" + filepath.Join(t.TempDir(), "empty"),
		})

		registry := backend.Discover(context.Background(), base, backend.SupportedVersions())

		require.Len(t, registry, 2)
		assert.Equal(t, root13, registry[domain.GCC13])
		assert.Equal(t, root11, registry[domain.GCC11])
	})

	t.Run("unset variables yield an empty registry", func(t *testing.T) {
		registry := backend.Discover(context.Background(), domain.NewEnvSnapshot(nil), backend.SupportedVersions())
		assert.Empty(t, registry)
	})
}

func TestBackend_Environment(t *testing.T) {
	backend := gcc.NewBackend()

	t.Run("prepends the install bin directory to PATH", func(t *testing.T) {
		root := fakeInstall(t)
		base := domain.NewEnvSnapshot([]string{"PATH=/usr/bin"})

		snap, err := backend.Environment(context.Background(), base, root, domain.X64)
		require.NoError(t, err)

		bin := filepath.Join(root, "bin")
		path, _ := snap.Get("PATH")
		assert.True(t, strings.HasPrefix(path, bin+string(os.PathListSeparator)))
		assert.True(t, strings.HasSuffix(path, "/usr/bin"))

		cc, _ := snap.Get("CC")
		assert.Equal(t, filepath.Join(bin, "gcc"), cc)
		cxx, _ := snap.Get("CXX")
		assert.Equal(t, filepath.Join(bin, "g++"), cxx)

		// The base snapshot is never mutated.
		path, _ = base.Get("PATH")
		assert.Equal(t, "/usr/bin", path)
	})

	t.Run("empty base PATH becomes just the bin directory", func(t *testing.T) {
		root := fakeInstall(t)
		snap, err := backend.Environment(context.Background(), domain.NewEnvSnapshot(nil), root, domain.X86)
		require.NoError(t, err)

		path, _ := snap.Get("PATH")
		assert.Equal(t, filepath.Join(root, "bin"), path)
	})

	t.Run("rejects anything but exactly one architecture", func(t *testing.T) {
		_, err := backend.Environment(context.Background(), domain.NewEnvSnapshot(nil), "/opt/gcc", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidArchitectureSelection)

		_, err = backend.Environment(context.Background(), domain.NewEnvSnapshot(nil), "/opt/gcc", domain.X86|domain.ARM64)
		assert.ErrorIs(t, err, domain.ErrInvalidArchitectureSelection)
	})
}

func TestBackend_Flags(t *testing.T) {
	backend := gcc.NewBackend()

	assert.Equal(t, []string{"-g", "-O0", "-D_DEBUG"}, backend.ConfigurationFlags(domain.Debug))
	assert.Equal(t, []string{"-O2", "-DNDEBUG"}, backend.ConfigurationFlags(domain.Release))
	assert.Equal(t, []string{"-m32"}, backend.MachineLinkerFlags(domain.X86))
	assert.Equal(t, []string{"-m64"}, backend.MachineLinkerFlags(domain.X64))
	assert.Nil(t, backend.MachineLinkerFlags(domain.ARM64))
	assert.Nil(t, backend.ObjectDirFlags("/anything"))
	assert.Equal(t, []string{"-I/usr/include/foo"}, backend.IncludeFlags([]string{"/usr/include/foo"}))
	assert.Equal(t, "-c", backend.CompileOnlyFlag())
	assert.Equal(t, ".so", backend.Extension(domain.SharedLibrary))
	assert.Equal(t, ".a", backend.Extension(domain.StaticLibrary))
	assert.Equal(t, "", backend.Extension(domain.Executable))
	assert.Equal(t, "*.o", backend.ObjectPattern())
}

func TestBackend_CompileCommand(t *testing.T) {
	backend := gcc.NewBackend()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int a;\n"), 0o644))

	task := domain.NewCompilerTask(false)
	require.NoError(t, task.SetSources([]string{src}))
	require.NoError(t, task.SetLibraryPaths([]string{dir}))
	require.NoError(t, task.SetLibraries([]string{"m", "libcustom.so.2"}))
	task.SetAssemblyType(domain.SharedLibrary)

	cell := &domain.BuildCell{
		CompilerFlags: []string{"-O2", "-fPIC"},
		LinkerFlags:   []string{"-m64", "-shared"},
		OutputPath:    filepath.Join(dir, "Release x64", "libcustom.so"),
	}

	name, args := backend.CompileCommand(task, cell)
	assert.Equal(t, "g++", name)
	assert.Equal(t, []string{
		"-O2", "-fPIC",
		src,
		"-o", cell.OutputPath,
		"-m64", "-shared",
		"-L" + dir,
		"-lm", "-l:libcustom.so.2",
	}, args)

	t.Run("static library compiles without link arguments", func(t *testing.T) {
		task.SetAssemblyType(domain.StaticLibrary)
		_, args := backend.CompileCommand(task, cell)
		assert.Equal(t, []string{"-O2", "-fPIC", src}, args)
	})
}

func TestBackend_ArchiveCommand(t *testing.T) {
	backend := gcc.NewBackend()

	cell := &domain.BuildCell{OutputPath: "/out/Debug x64/libcore.a"}
	name, args := backend.ArchiveCommand(nil, cell, []string{"/obj/a.o", "/obj/b.o"})

	assert.Equal(t, "ar", name)
	assert.Equal(t, []string{"rcs", "/out/Debug x64/libcore.a", "/obj/a.o", "/obj/b.o"}, args)
}
