package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// Fatal reports a command-level failure and exits. Library code returns
// errors instead of calling this.
func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "sbld:\n\t\033[0;1;31mfatal\033[0m: %v\n", v)
	os.Exit(1)
}

// Read decodes one little-endian value of type T from the front of data.
func Read[T any](data []byte) (T, error) {
	var val T
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &val); err != nil {
		return val, err
	}
	return val, nil
}
