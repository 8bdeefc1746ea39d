// Package units discovers the configuration units managed by dotlink.
//
// A unit is a first-level directory under the source tree. Units are
// enumerated fresh on every invocation; nothing is cached or persisted.
package units

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/platform"
	"github.com/dotlink/dotlink/pkg/types"
)

// MetadataFile is the optional per-unit metadata file name.
const MetadataFile = ".dotlink.toml"

// unitMetadata is the schema of a unit's metadata file.
type unitMetadata struct {
	// Platforms restricts the unit to the named platforms when non-empty.
	Platforms []string `toml:"platforms"`
}

// List enumerates the units under sourceDir applicable to the given
// platform, lexicographically sorted by name. Files at the first level are
// ignored. A missing source directory is a valid bootstrap state and yields
// an empty list; any other read failure is a run-level error.
func List(fsys types.FS, sourceDir string, plat platform.Platform) ([]types.ConfigUnit, error) {
	logger := logging.GetLogger("units")

	entries, err := fsys.ReadDir(sourceDir)
	if err != nil {
		if isNotExist(err) {
			logger.Debug().Str("source", sourceDir).Msg("Source directory missing, nothing to enumerate")
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrSourceAccess, "cannot read source directory").
			WithDetail("path", sourceDir)
	}

	var result []types.ConfigUnit
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()

		unit := types.ConfigUnit{
			Name:       name,
			SourcePath: filepath.Join(sourceDir, name),
		}
		if meta, err := readMetadata(fsys, unit.SourcePath); err != nil {
			logger.Warn().Err(err).Str("unit", name).Msg("Ignoring unreadable unit metadata")
		} else if meta != nil {
			unit.Platforms = meta.Platforms
		}

		if plat.Excluded(name) || !unit.AppliesTo(plat.Name()) {
			logger.Trace().Str("unit", name).Msg("Unit not applicable on this platform")
			continue
		}

		result = append(result, unit)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	logger.Debug().Int("count", len(result)).Str("source", sourceDir).Msg("Enumerated units")
	return result, nil
}

// readMetadata parses the unit's metadata file, returning nil when the file
// does not exist.
func readMetadata(fsys types.FS, unitDir string) (*unitMetadata, error) {
	data, err := fsys.ReadFile(filepath.Join(unitDir, MetadataFile))
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var meta unitMetadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrap(err, errors.ErrUnitInvalid, "invalid unit metadata")
	}
	return &meta, nil
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
