package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkState_Label(t *testing.T) {
	tests := []struct {
		state LinkState
		want  string
	}{
		{StateAbsent, "Not linked"},
		{StateLinked, "Linked"},
		{StateWrongTarget, "Wrong target"},
		{StateRealEntry, "Exists (not symlink)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.Label())
	}
}

func TestConfigUnit_AppliesTo(t *testing.T) {
	unrestricted := ConfigUnit{Name: "nvim"}
	assert.True(t, unrestricted.AppliesTo("linux"))
	assert.True(t, unrestricted.AppliesTo("windows"))

	windowsOnly := ConfigUnit{Name: "powershell", Platforms: []string{"windows"}}
	assert.True(t, windowsOnly.AppliesTo("windows"))
	assert.False(t, windowsOnly.AppliesTo("linux"))
}

func TestRunResult_Failed(t *testing.T) {
	ok := RunResult{Results: []UnitResult{
		{Action: ActionLink},
		{Action: ActionNone},
	}}
	assert.False(t, ok.Failed())

	bad := RunResult{Results: []UnitResult{
		{Action: ActionLink},
		{Action: ActionFail},
	}}
	assert.True(t, bad.Failed())

	assert.False(t, RunResult{}.Failed())
}
