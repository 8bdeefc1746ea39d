// Package style renders per-unit reconciliation results with pterm.
package style

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dotlink/dotlink/pkg/types"
)

// StateStyle returns the pterm style for a link state.
func StateStyle(state types.LinkState) *pterm.Style {
	switch state {
	case types.StateLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StateWrongTarget:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StateRealEntry:
		return pterm.NewStyle(pterm.FgCyan)
	case types.StateAbsent:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// ActionStyle returns the pterm style for a reconciliation action.
func ActionStyle(action types.UnitAction) *pterm.Style {
	switch action {
	case types.ActionFail:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case types.ActionSkip:
		return pterm.NewStyle(pterm.FgYellow)
	case types.ActionNone:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgGreen)
	}
}

// actionVerbs maps each action to the phrase shown after the unit name.
var actionVerbs = map[types.UnitAction]string{
	types.ActionNone:       "already linked",
	types.ActionLink:       "linked",
	types.ActionRelink:     "relinked (stale target replaced)",
	types.ActionBackupLink: "backed up and linked",
	types.ActionUnlink:     "unlinked",
	types.ActionRestore:    "unlinked, backup restored",
	types.ActionSkip:       "skipped (real entry, not touched)",
	types.ActionFail:       "failed",
}

// RenderUnitResult renders a single per-unit result line.
func RenderUnitResult(res types.UnitResult) string {
	verb, ok := actionVerbs[res.Action]
	if !ok {
		verb = string(res.Action)
	}

	name := pterm.Bold.Sprintf("%-14s", res.Unit.Name)
	line := fmt.Sprintf("%s %s", name, ActionStyle(res.Action).Sprint(verb))

	switch {
	case res.Err != nil:
		line += pterm.NewStyle(pterm.FgRed).Sprintf(": %v", res.Err)
	case res.BackupPath != "":
		line += pterm.NewStyle(pterm.FgGray).Sprintf(" -> %s", res.BackupPath)
	case res.RestoredFrom != "":
		line += pterm.NewStyle(pterm.FgGray).Sprintf(" <- %s", res.RestoredFrom)
	}
	return line
}

// RenderUnitStatus renders a single status row.
func RenderUnitStatus(st types.UnitStatus) string {
	name := pterm.Bold.Sprintf("%-14s", st.Unit.Name)
	return fmt.Sprintf("%s %s", name, StateStyle(st.State).Sprint(st.State.Label()))
}
