package serializer

// Options configures Write. The zero value is not valid; use Default()
// or DefaultOptions().
type Options struct {
	IndentSize        uint
	CompactSequences  bool
	CompactMappings   bool
	FlowThreshold     uint
}

// Default returns the package's documented defaults.
func Default() Options {
	return Options{
		IndentSize:    2,
		FlowThreshold: 60,
	}
}
