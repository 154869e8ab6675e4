// Package locate finds a participant's data directory and its log files.
package locate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// File name patterns inside a data directory.
const (
	ContinuousPattern = "continuous_log*.csv"
	DiscretePattern   = "discrete_log*.csv"
)

// UnknownParticipant is used when a subfolder name carries no participant id.
const UnknownParticipant = "unknown"

// Inputs is the resolved set of files for one participant.
type Inputs struct {
	Subfolder      string // relative to the results root when found by search
	DataDir        string
	ContinuousFile string
	DiscreteFile   string
}

// FindSubfolder searches root for a directory whose name ends with
// "<id>_<tag>" and returns its path relative to root. The subdirectories of a
// directory are all checked, in lexical order, before any of them is
// searched.
func FindSubfolder(root, id, tag string) (string, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &types.NotFoundError{What: "subfolder for participant " + id, Path: root}
		}
		return "", err
	}
	if rel, ok := searchDir(root, "", id+"_"+tag); ok {
		return rel, nil
	}
	return "", &types.NotFoundError{What: "subfolder for participant " + id, Path: root}
}

// searchDir checks the children of root/rel, then descends into them.
// Unreadable directories are skipped.
func searchDir(root, rel, suffix string) (string, bool) {
	entries, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return "", false
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), suffix) {
			return filepath.Join(rel, e.Name()), true
		}
		dirs = append(dirs, e.Name())
	}
	for _, d := range dirs {
		if found, ok := searchDir(root, filepath.Join(rel, d), suffix); ok {
			return found, true
		}
	}
	return "", false
}

// ForParticipant resolves inputs by searching root for the participant's folder.
func ForParticipant(root, id, tag string) (Inputs, error) {
	sub, err := FindSubfolder(root, id, tag)
	if err != nil {
		return Inputs{}, err
	}
	in, err := inDataDir(filepath.Join(root, sub, "data"))
	in.Subfolder = sub
	return in, err
}

// ForSubfolder resolves inputs for an explicit subfolder. Relative paths are
// taken relative to root.
func ForSubfolder(root, subfolder string) (Inputs, error) {
	dir := subfolder
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, subfolder)
	}
	in, err := inDataDir(filepath.Join(dir, "data"))
	in.Subfolder = subfolder
	return in, err
}

func inDataDir(dataDir string) (Inputs, error) {
	in := Inputs{DataDir: dataDir}
	st, err := os.Stat(dataDir)
	if err != nil || !st.IsDir() {
		return in, &types.NotFoundError{What: "input directory", Path: dataDir}
	}
	if in.ContinuousFile, err = FirstMatch(dataDir, ContinuousPattern); err != nil {
		return in, err
	}
	if in.DiscreteFile, err = FirstMatch(dataDir, DiscretePattern); err != nil {
		return in, err
	}
	return in, nil
}

// FirstMatch returns the lexically first file in dir matching pattern.
func FirstMatch(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", &types.NotFoundError{What: "files matching " + pattern, Path: dir}
	}
	sort.Strings(matches)
	return matches[0], nil
}

// ParticipantFromSubfolder extracts the 6-character id that precedes
// "_<tag>" at the end of a subfolder path, or UnknownParticipant.
func ParticipantFromSubfolder(subfolder, tag string) string {
	re := regexp.MustCompile(`([A-Za-z0-9]{6})_` + regexp.QuoteMeta(tag) + `[/\\]?$`)
	m := re.FindStringSubmatch(subfolder)
	if m == nil {
		return UnknownParticipant
	}
	return m[1]
}
