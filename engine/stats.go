package engine

import "github.com/custodia-network/custodia/lib"

// Stats are the monotone lifecycle counters; each increments exactly once
// when the corresponding terminal transition occurs. Pending is derived, so
// the record can never disagree with its components.
type Stats struct {
	Total     uint64 `json:"total"`     // proposals ever created
	Executed  uint64 `json:"executed"`  // proposals that executed
	Cancelled uint64 `json:"cancelled"` // proposals that were cancelled before expiry was noted
	Expired   uint64 `json:"expired"`   // proposals whose lapse was observed
	Pending   uint64 `json:"pending"`   // derived: total minus the terminal counters
}

// GetStats() reads the statistics record with the derived pending count filled in
func (e *Engine) GetStats() (*Stats, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getStats()
}

func (e *Engine) getStats() (*Stats, lib.ErrorI) {
	stats := new(Stats)
	if _, err := e.Get(KeyForStats(), stats); err != nil {
		return nil, err
	}
	stats.Pending = stats.Total - stats.Executed - stats.Cancelled - stats.Expired
	return stats, nil
}

// SetStats() writes the statistics record; the derived field is not persisted
func (e *Engine) SetStats(stats *Stats) lib.ErrorI {
	if stats == nil {
		return ErrEmptyStats()
	}
	stats.Pending = 0
	return e.Set(KeyForStats(), stats)
}

// updateStats() applies a counter mutation to the statistics record
func (e *Engine) updateStats(mutate func(*Stats)) lib.ErrorI {
	stats, err := e.getStats()
	if err != nil {
		return err
	}
	mutate(stats)
	return e.SetStats(stats)
}
