package engine

import (
	"errors"
	"math"

	"github.com/divvyhq/divvy/internal/models"
)

var (
	ErrNoParticipants     = errors.New("split requires at least one participant")
	ErrUnknownSplitMethod = errors.New("unknown split method")
	ErrPercentSum         = errors.New("percentages must add up to 100")
	ErrCustomSum          = errors.New("custom shares must add up to the expense amount")
)

// BuildSplitDetails collapses a split policy into per-member owed shares in
// the expense's own currency. This runs when an expense is created or
// edited; balance computation consumes the resulting map and never sees the
// policy that produced it.
//
// The meaning of shares depends on the method: for percentage splits it
// holds each member's percent of the total (missing members count as 0),
// for custom splits the exact amount owed. Equal splits ignore it.
func BuildSplitDetails(method models.SplitMethod, amount float64, splitBetween []string, shares map[string]float64) (map[string]float64, error) {
	if len(splitBetween) == 0 {
		return nil, ErrNoParticipants
	}

	details := make(map[string]float64, len(splitBetween))

	switch method {
	case models.SplitEqual:
		perPerson := roundTo2(amount / float64(len(splitBetween)))
		for _, id := range splitBetween {
			details[id] = perPerson
		}

	case models.SplitPercentage:
		var totalPercent float64
		for _, id := range splitBetween {
			percent := shares[id]
			totalPercent += percent
			details[id] = roundTo2(percent / 100 * amount)
		}
		if math.Abs(totalPercent-100) > 0.1 {
			return nil, ErrPercentSum
		}

	case models.SplitCustom:
		var total float64
		for _, id := range splitBetween {
			share := shares[id]
			total += share
			details[id] = roundTo2(share)
		}
		if math.Abs(total-amount) > epsilon {
			return nil, ErrCustomSum
		}

	default:
		return nil, ErrUnknownSplitMethod
	}

	return details, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
