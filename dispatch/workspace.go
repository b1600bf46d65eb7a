package dispatch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/dargueta/squeeze"
	"github.com/dargueta/squeeze/utilities/huffman"
)

// CompressedFilePrefix is prepended to the name of an uploaded file to get the
// name of its compressed form.
const CompressedFilePrefix = "compressed_"

// Config gives the directories a [Workspace] reads uploads from and writes
// compressed files to.
type Config struct {
	UploadDir     string
	CompressedDir string
	Options       squeeze.Option
	Logger        *log.Logger
}

// Workspace is the file storage used by an upload front end. Uploaded files are
// read from one directory and compressed into another.
//
// It's safe for concurrent use. Two jobs writing the same output file at the
// same time are refused.
type Workspace struct {
	config     Config
	dispatcher Dispatcher

	lock     sync.Mutex
	inFlight map[string]struct{}
}

// NewWorkspace creates the workspace's directories if they don't already exist.
func NewWorkspace(config Config) (*Workspace, error) {
	if config.UploadDir == "" || config.CompressedDir == "" {
		return nil, squeeze.ErrIOFailed.WithMessage(
			"upload and compressed directories must both be set")
	}

	for _, dir := range []string{config.UploadDir, config.CompressedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, squeeze.ErrIOFailed.Wrap(err)
		}
	}

	return &Workspace{
		config:     config,
		dispatcher: Dispatcher{Options: config.Options, Logger: config.Logger},
		inFlight:   make(map[string]struct{}),
	}, nil
}

// UploadPath gives the path an uploaded file named `filename` is stored at.
// Directory components of `filename` are ignored.
func (w *Workspace) UploadPath(filename string) string {
	return filepath.Join(w.config.UploadDir, filepath.Base(filename))
}

// OutputPath gives the path the compressed form of `filename` is written to.
func (w *Workspace) OutputPath(filename string) string {
	return filepath.Join(w.config.CompressedDir, CompressedFilePrefix+filepath.Base(filename))
}

// CompressUpload compresses the uploaded file `filename` with the codec for its
// extension and returns the path of the compressed file.
//
// If compression fails, any partial output is deleted.
func (w *Workspace) CompressUpload(filename string) (string, error) {
	kind, err := KindForFilename(filename)
	if err != nil {
		return "", err
	}

	inputPath := w.UploadPath(filename)
	outputPath := w.OutputPath(filename)
	if err = w.acquire(outputPath); err != nil {
		return "", err
	}
	defer w.release(outputPath)

	err = w.dispatcher.Compress(kind, inputPath, outputPath)
	if err != nil {
		w.discard(outputPath)
		return "", err
	}

	if _, err = os.Stat(outputPath); err != nil {
		return "", squeeze.ErrCompressionFailed.WithMessage("file not created").Wrap(
			squeeze.ErrIOFailed.Wrap(err))
	}
	return outputPath, nil
}

// CompressedPath returns the path of an existing compressed file in the
// workspace. If it doesn't exist the error wraps [os.ErrNotExist].
func (w *Workspace) CompressedPath(name string) (string, error) {
	path := filepath.Join(w.config.CompressedDir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		return "", squeeze.ErrIOFailed.Wrap(err)
	}
	return path, nil
}

func (w *Workspace) acquire(outputPath string) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if _, busy := w.inFlight[outputPath]; busy {
		return squeeze.ErrBusy.WithMessage(fmt.Sprintf("%q", outputPath))
	}
	w.inFlight[outputPath] = struct{}{}
	return nil
}

func (w *Workspace) release(outputPath string) {
	w.lock.Lock()
	defer w.lock.Unlock()
	delete(w.inFlight, outputPath)
}

// discard removes a failed job's output and code table, if either exists.
func (w *Workspace) discard(outputPath string) {
	for _, path := range []string{outputPath, outputPath + huffman.CodeTableFileSuffix} {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			w.dispatcher.logger().Printf("failed to remove partial output %q: %s", path, err.Error())
		}
	}
}
