package differ

// DiffConfig holds configuration for text diffing
type DiffConfig struct {
	EnableSemanticCleanup bool
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		EnableSemanticCleanup: true,
	}
}
