// Package output renders engine results for the terminal using the themed
// lipgloss style registry.
package output

import (
	"fmt"
	"io"

	"github.com/dotlink/dotlink/pkg/output/styles"
	"github.com/dotlink/dotlink/pkg/types"
)

// LoadStylesFromFile loads a custom theme over the embedded defaults.
func LoadStylesFromFile(path string) error {
	return styles.LoadStyles(path)
}

// stateStyleName maps a link state to its semantic style name.
func stateStyleName(state types.LinkState) string {
	switch state {
	case types.StateLinked:
		return "Linked"
	case types.StateWrongTarget:
		return "WrongTarget"
	case types.StateRealEntry:
		return "RealEntry"
	case types.StateAbsent:
		return "Absent"
	default:
		return "Muted"
	}
}

// RenderStatusTable writes the status rows to w, one unit per line.
func RenderStatusTable(w io.Writer, statuses []types.UnitStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(w, styles.GetStyle("Muted").Render("no units found"))
		return
	}

	for _, st := range statuses {
		name := styles.GetStyle("UnitName").Render(st.Unit.Name)
		state := styles.GetStyle(stateStyleName(st.State)).Render(st.State.Label())
		fmt.Fprintf(w, "%s %s\n", name, state)
	}
}

// RenderError writes a styled error line to w.
func RenderError(w io.Writer, err error) {
	fmt.Fprintln(w, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
}
