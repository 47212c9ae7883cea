package features

import (
	"os"
)

// ArtifactFileSystem is the interface to handle feature artifact file I/O
type ArtifactFileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, buf []byte) error
}

// ArtifactFileSystemImpl is the implementation for the artifact file interface
type ArtifactFileSystemImpl struct {
}

func (fs *ArtifactFileSystemImpl) ReadFile(name string) (buf []byte, err error) {
	buf, err = os.ReadFile(name)
	return
}

func (fs *ArtifactFileSystemImpl) WriteFile(name string, buf []byte) (err error) {
	err = os.WriteFile(name, buf, 0644)
	return
}
