package types

// LinkState classifies the current state of a link target on disk.
// It is a closed enumeration; every switch over it should be exhaustive.
type LinkState string

const (
	// StateAbsent means nothing exists at the target, not even a dangling
	// symlink.
	StateAbsent LinkState = "absent"

	// StateLinked means the target is a symlink whose canonical resolution
	// equals the canonical source path.
	StateLinked LinkState = "linked"

	// StateWrongTarget means the target is a symlink pointing somewhere
	// other than the expected source.
	StateWrongTarget LinkState = "wrong-target"

	// StateRealEntry means a regular file or real directory occupies the
	// target.
	StateRealEntry LinkState = "real-entry"
)

// Label returns the human-readable form used by status output.
func (s LinkState) Label() string {
	switch s {
	case StateAbsent:
		return "Not linked"
	case StateLinked:
		return "Linked"
	case StateWrongTarget:
		return "Wrong target"
	case StateRealEntry:
		return "Exists (not symlink)"
	default:
		return string(s)
	}
}
