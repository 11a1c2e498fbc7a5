package linker

// Config carries the addressing mode of the output module. It is
// immutable and passed explicitly into every Finalize call.
type Config struct {
	// Pic selects position-independent addressing: active data segments
	// are placed relative to the imported memory-base global instead of
	// baking their base address in as a constant.
	Pic bool

	// Is64 selects 64-bit address width for constant placement
	// expressions (wasm64).
	Is64 bool

	// MemoryBase is the index of the imported memory-base global
	// referenced by active segments under Pic.
	MemoryBase uint32
}

// DefaultConfig returns the static 32-bit addressing configuration.
func DefaultConfig() Config {
	return Config{}
}
