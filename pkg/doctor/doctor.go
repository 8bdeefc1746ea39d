// Package doctor runs read-only diagnostics over the dotlink layout.
// It only ever calls the enumerator and the inspector; nothing here mutates
// the filesystem.
package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/inspect"
	"github.com/dotlink/dotlink/pkg/paths"
	"github.com/dotlink/dotlink/pkg/platform"
	"github.com/dotlink/dotlink/pkg/types"
	"github.com/dotlink/dotlink/pkg/units"
)

// CheckStatus is the outcome of a single diagnostic check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// Check is one diagnostic result.
type Check struct {
	Name   string
	Status CheckStatus
	Detail string
}

// Run executes all diagnostics and returns their results in order.
func Run(fsys types.FS, p *paths.Paths, plat platform.Platform) []Check {
	var checks []Check

	checks = append(checks, checkDir(fsys, "repo root", p.RepoRoot(), CheckFail))
	checks = append(checks, checkDir(fsys, "source directory", p.SourceDir(), CheckWarn))
	checks = append(checks, checkDir(fsys, "target directory", p.TargetDir(), CheckFail))

	list, err := units.List(fsys, p.SourceDir(), plat)
	if err != nil {
		checks = append(checks, Check{
			Name:   "unit enumeration",
			Status: CheckFail,
			Detail: err.Error(),
		})
		return checks
	}
	checks = append(checks, Check{
		Name:   "unit enumeration",
		Status: CheckOK,
		Detail: fmt.Sprintf("%d unit(s) found", len(list)),
	})

	for _, unit := range list {
		target := filepath.Join(p.TargetDir(), unit.Name)
		state, err := inspect.State(fsys, target, unit.SourcePath)
		if err != nil {
			checks = append(checks, Check{
				Name:   "unit " + unit.Name,
				Status: CheckFail,
				Detail: err.Error(),
			})
			continue
		}

		status := CheckOK
		if state == types.StateWrongTarget {
			status = CheckWarn
		}
		checks = append(checks, Check{
			Name:   "unit " + unit.Name,
			Status: status,
			Detail: state.Label(),
		})
	}

	return checks
}

func checkDir(fsys types.FS, name, path string, missing CheckStatus) Check {
	info, err := fsys.Stat(path)
	if err != nil {
		return Check{Name: name, Status: missing, Detail: path + " does not exist"}
	}
	if !info.IsDir() {
		return Check{Name: name, Status: CheckFail, Detail: path + " is not a directory"}
	}
	return Check{Name: name, Status: CheckOK, Detail: path}
}
