package linker

// InputSection is a named slice of the object file.
type InputSection struct {
	Name  string
	Index int
	Data  []byte
}
