package types

// ConfigUnit is one named configuration folder managed as an atomic linking
// target. Units are discovered fresh on every invocation by scanning the
// source directory; they are never persisted.
type ConfigUnit struct {
	// Name is the folder basename, e.g. "nvim"
	Name string

	// SourcePath is the absolute path of the unit under the source tree.
	// It is read-only input and never mutated.
	SourcePath string

	// Platforms optionally restricts the unit to the named platforms
	// (e.g. ["windows"]). Empty means the unit applies everywhere.
	Platforms []string
}

// AppliesTo reports whether the unit is applicable on the given platform.
func (u ConfigUnit) AppliesTo(platform string) bool {
	if len(u.Platforms) == 0 {
		return true
	}
	for _, p := range u.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
