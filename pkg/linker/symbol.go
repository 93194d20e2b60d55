package linker

type Symbol struct {
	Name  string
	Value uint64
	Size  uint64
	// Index of the owning section, -1 if the symbol is not defined in one.
	Section int
}

// SymbolTable maps a read-only data symbol's address to its assigned label.
// It only lives for the duration of one decode pass.
type SymbolTable map[uint64]string
