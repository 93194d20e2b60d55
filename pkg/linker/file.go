package linker

import (
	"os"

	"github.com/pkg/errors"
)

type File struct {
	Name     string
	Contents []byte
}

func NewFile(name string) (*File, error) {
	contents, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "reading input file")
	}
	return &File{Name: name, Contents: contents}, nil
}
