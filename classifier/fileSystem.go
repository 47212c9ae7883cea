package classifier

import (
	"os"
)

// ModelFileSystem is the interface to handle model artifact reads
type ModelFileSystem interface {
	ReadFile(filename string) ([]byte, error)
}

// ModelFileSystemImpl is the implementation for the model file interface
type ModelFileSystemImpl struct {
}

func (fs *ModelFileSystemImpl) ReadFile(name string) (buf []byte, err error) {
	buf, err = os.ReadFile(name)
	return
}
