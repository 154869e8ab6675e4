package analysis

import (
	"github.com/sunterlet/visualize-navigation-trajectories/src/types"
)

// FilterParticipants keeps rows whose participant id is listed. An empty list
// keeps everything. A filter that removes every row yields a NoDataError.
func FilterParticipants(rows []types.ContinuousRow, ids []string) ([]types.ContinuousRow, error) {
	if len(ids) == 0 {
		return rows, nil
	}
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	var out []types.ContinuousRow
	for _, r := range rows {
		if _, ok := keep[r.ParticipantID]; ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, &types.NoDataError{Participants: append([]string(nil), ids...)}
	}
	return out, nil
}

// GroupTrials partitions rows by trial id. Rows keep their input order within
// a trial; trials are returned in order of first appearance.
func GroupTrials(rows []types.ContinuousRow) []types.Trial {
	idx := map[string]int{}
	var trials []types.Trial
	for _, r := range rows {
		i, ok := idx[r.TrialID]
		if !ok {
			i = len(trials)
			idx[r.TrialID] = i
			trials = append(trials, types.Trial{ID: r.TrialID})
		}
		trials[i].Rows = append(trials[i].Rows, r)
	}
	return trials
}

// DiscreteIndex maps trial ids to their discrete-log rows.
type DiscreteIndex struct {
	rows map[string][]types.DiscreteRow
}

// IndexDiscrete builds a lookup over discrete rows, keeping input order for
// duplicate trial ids.
func IndexDiscrete(rows []types.DiscreteRow) DiscreteIndex {
	m := make(map[string][]types.DiscreteRow, len(rows))
	for _, r := range rows {
		m[r.TrialID] = append(m[r.TrialID], r)
	}
	return DiscreteIndex{rows: m}
}

// Lookup returns the first discrete row for trialID and how many rows share
// that id. A trial without rows yields a MissingDiscreteDataError.
func (d DiscreteIndex) Lookup(trialID string) (types.DiscreteRow, int, error) {
	rs := d.rows[trialID]
	if len(rs) == 0 {
		return types.DiscreteRow{}, 0, &types.MissingDiscreteDataError{TrialID: trialID}
	}
	return rs[0], len(rs), nil
}
