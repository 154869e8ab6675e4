package config

import (
	"errors"
	"regexp"
	"strings"
)

// ModeKind selects how participant data directories are found.
type ModeKind int

const (
	// ModeParticipants searches the results root for each participant id.
	ModeParticipants ModeKind = iota
	// ModeSubfolder uses one explicit subfolder, optionally filtering rows.
	ModeSubfolder
)

func (k ModeKind) String() string {
	if k == ModeSubfolder {
		return "subfolder"
	}
	return "participants"
}

// Mode is the input selection for one run. Build it with ByParticipant or
// BySubfolder.
type Mode struct {
	Kind         ModeKind
	Participants []string // ids to search for (ModeParticipants)
	Subfolder    string   // explicit path (ModeSubfolder)
	Filter       []string // participant_id row filter (ModeSubfolder)
}

// ByParticipant processes each id independently.
func ByParticipant(ids ...string) Mode {
	return Mode{Kind: ModeParticipants, Participants: append([]string(nil), ids...)}
}

// BySubfolder processes one subfolder, keeping only rows for filter ids when
// any are given.
func BySubfolder(path string, filter ...string) Mode {
	return Mode{Kind: ModeSubfolder, Subfolder: path, Filter: append([]string(nil), filter...)}
}

var participantIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

// IsParticipantID reports whether s looks like a 6-character participant id.
func IsParticipantID(s string) bool { return participantIDPattern.MatchString(s) }

// ModeFromArgs picks the mode from --subfolder values and --participants.
// Several values, or one bare 6-character id without a filter, select
// ModeParticipants; otherwise the single value is a subfolder path.
func ModeFromArgs(subfolders, participants []string) (Mode, error) {
	var vals []string
	for _, s := range subfolders {
		if s = strings.TrimSpace(s); s != "" {
			vals = append(vals, s)
		}
	}
	if len(vals) == 0 {
		return Mode{}, errors.New("--subfolder requires at least one value")
	}
	if len(participants) == 0 {
		all := true
		for _, v := range vals {
			if !IsParticipantID(v) {
				all = false
				break
			}
		}
		if all {
			return ByParticipant(vals...), nil
		}
	}
	if len(vals) > 1 {
		return Mode{}, errors.New("--subfolder takes a single path unless every value is a 6-character participant id")
	}
	return BySubfolder(vals[0], participants...), nil
}
