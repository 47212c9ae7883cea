package blacklist

import (
	"os"
)

type fileSystem interface {
	readFile(string) ([]byte, error)
}

// FileSystemImpl is the implementation for file system interface
type FileSystemImpl struct {
}

func (fs *FileSystemImpl) readFile(fileName string) (data []byte, err error) {
	data, err = os.ReadFile(fileName)
	return
}
