package dispatch_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dargueta/squeeze"
	"github.com/dargueta/squeeze/dispatch"
	squeezetest "github.com/dargueta/squeeze/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T, options squeeze.Option) (*dispatch.Workspace, dispatch.Config) {
	root := t.TempDir()
	config := dispatch.Config{
		UploadDir:     filepath.Join(root, "uploads"),
		CompressedDir: filepath.Join(root, "nested", "compressed"),
		Options:       options,
		Logger:        log.New(io.Discard, "", 0),
	}
	workspace, err := dispatch.NewWorkspace(config)
	require.NoError(t, err)
	return workspace, config
}

func TestNewWorkspace__CreatesDirectories(t *testing.T) {
	_, config := newTestWorkspace(t, squeeze.OptionNone)
	assert.DirExists(t, config.UploadDir)
	assert.DirExists(t, config.CompressedDir)
}

func TestNewWorkspace__MissingDirectory(t *testing.T) {
	_, err := dispatch.NewWorkspace(dispatch.Config{UploadDir: t.TempDir()})
	assert.ErrorIs(t, err, squeeze.ErrIOFailed)
}

func TestCompressUpload__Basic(t *testing.T) {
	workspace, config := newTestWorkspace(t, squeeze.OptionNone)
	squeezetest.WriteInputFile(t, config.UploadDir, "notes.txt", []byte("aabbbcc"))

	outputPath, err := workspace.CompressUpload("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.CompressedDir, "compressed_notes.txt"), outputPath)
	assert.Equal(t, "10100001111", string(readFile(t, outputPath)))

	downloadPath, err := workspace.CompressedPath("compressed_notes.txt")
	require.NoError(t, err)
	assert.Equal(t, outputPath, downloadPath)
}

func TestCompressUpload__IgnoresDirectoryComponents(t *testing.T) {
	workspace, config := newTestWorkspace(t, squeeze.OptionNone)
	squeezetest.WriteInputFile(t, config.UploadDir, "logo.png", []byte("zzzz"))

	outputPath, err := workspace.CompressUpload("../../../logo.png")
	require.NoError(t, err)
	assert.Equal(t, config.CompressedDir, filepath.Dir(outputPath))
	assert.Equal(t, "z4", string(readFile(t, outputPath)))
}

func TestCompressUpload__Unsupported(t *testing.T) {
	workspace, config := newTestWorkspace(t, squeeze.OptionNone)
	squeezetest.WriteInputFile(t, config.UploadDir, "anim.gif", []byte("GIF89a"))

	_, err := workspace.CompressUpload("anim.gif")
	assert.ErrorIs(t, err, squeeze.ErrUnsupportedKind)
	assert.NoFileExists(t, workspace.OutputPath("anim.gif"))
}

// A failed job must not leave anything behind that looks like valid output,
// including the output of an earlier successful run.
func TestCompressUpload__FailureDiscardsOutput(t *testing.T) {
	workspace, config := newTestWorkspace(t, squeeze.OptionWriteCodeTable)
	squeezetest.WriteInputFile(t, config.UploadDir, "notes.txt", []byte("first version"))

	outputPath, err := workspace.CompressUpload("notes.txt")
	require.NoError(t, err)
	require.FileExists(t, outputPath)
	require.FileExists(t, outputPath+".codes.csv")

	squeezetest.WriteInputFile(t, config.UploadDir, "notes.txt", []byte{})
	_, err = workspace.CompressUpload("notes.txt")
	assert.ErrorIs(t, err, squeeze.ErrCompressionFailed)
	assert.ErrorIs(t, err, squeeze.ErrEmptyInput)
	assert.NoFileExists(t, outputPath)
	assert.NoFileExists(t, outputPath+".codes.csv")
}

func TestCompressUpload__MissingUpload(t *testing.T) {
	workspace, _ := newTestWorkspace(t, squeeze.OptionNone)
	_, err := workspace.CompressUpload("ghost.jpg")
	assert.ErrorIs(t, err, squeeze.ErrCompressionFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressedPath__Missing(t *testing.T) {
	workspace, _ := newTestWorkspace(t, squeeze.OptionNone)
	_, err := workspace.CompressedPath("compressed_nothing.txt")
	assert.ErrorIs(t, err, squeeze.ErrIOFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressUpload__Concurrent(t *testing.T) {
	workspace, config := newTestWorkspace(t, squeeze.OptionNone)
	const totalFiles = 24

	expected := make(map[string][]byte, totalFiles)
	for i := 0; i < totalFiles; i++ {
		var name string
		var contents []byte
		switch i % 3 {
		case 0:
			name = fmt.Sprintf("file%02d.txt", i)
			contents = []byte(fmt.Sprintf("text file number %d", i))
		case 1:
			name = fmt.Sprintf("file%02d.jpg", i)
			contents = squeezetest.RandomImageBytes(t, 256+i)
		default:
			name = fmt.Sprintf("file%02d.png", i)
			contents = squeezetest.RandomImageBytes(t, 512+i)
		}
		squeezetest.WriteInputFile(t, config.UploadDir, name, contents)
		expected[name] = contents
	}

	errs := make(map[string]error, totalFiles)
	var errsLock sync.Mutex
	wg := sync.WaitGroup{}
	for name := range expected {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := workspace.CompressUpload(name)
			errsLock.Lock()
			errs[name] = err
			errsLock.Unlock()
		}(name)
	}
	wg.Wait()

	for name, err := range errs {
		assert.NoError(t, err, "compressing %s failed", name)
	}

	// Compressing again sequentially must give byte-identical output.
	for name := range expected {
		concurrentOutput := readFile(t, workspace.OutputPath(name))
		_, err := workspace.CompressUpload(name)
		require.NoError(t, err)
		assert.Equal(t, concurrentOutput, readFile(t, workspace.OutputPath(name)), name)
	}
}
