package types

// UnitStatus is one row of read-only status output.
type UnitStatus struct {
	Unit       ConfigUnit
	State      LinkState
	TargetPath string
}
