package driver

// DefaultExtensions are the file suffixes a directory run picks up.
var DefaultExtensions = []string{".ifc", ".stp", ".step", ".p21"}

// Options configure one validation run.
type Options struct {
	// CheckReferences reports #N parameters that name no instance.
	CheckReferences bool
	// CheckHeader verifies parameter counts of the standard header entities.
	CheckHeader bool
	// OnlyHeader stops after the HEADER section; implies CheckHeader.
	OnlyHeader bool
	// MaxDiagnostics caps the bag; 0 means no limit.
	MaxDiagnostics int
	// MaxDepth limits parameter nesting; 0 uses the parser default.
	MaxDepth int
	// EnableTimings records lex+parse and sema durations in Result.Timing.
	EnableTimings bool
	// Cache, when set, reuses results of files seen before.
	Cache *DiskCache
	// Extensions filter directory runs; nil means DefaultExtensions.
	Extensions []string
	// Observer receives phase boundaries of every file.
	Observer PhaseObserver
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}
