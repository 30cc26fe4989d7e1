package ratio

import (
	"fmt"

	"github.com/wonny/poolstat/internal/contracts"
)

// PickHighestVolume returns the ratio of the pool with the largest volume.
// The first such pool in input order wins a tie.
func PickHighestVolume(ratios []contracts.RatioRecord) (contracts.RatioRecord, error) {
	if len(ratios) == 0 {
		return contracts.RatioRecord{}, fmt.Errorf("highest volume: %w", contracts.ErrEmptyInput)
	}

	best := ratios[0]
	for _, r := range ratios[1:] {
		if r.Record.Volume > best.Record.Volume {
			best = r
		}
	}
	return best, nil
}
