// Package calculator is the allocation and balance engine: pure
// functions from an immutable ledger snapshot to derived figures, with
// exact-cent accounting. Nothing here does I/O, reads the clock, or
// mutates its inputs, so every function is safe to call repeatedly and
// in any order.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/tabkeep/tabkeep/internal/models"
)

// ParticipantSet returns the unique participant IDs across all items of
// a purchase, ordered by first appearance. The order is a contract, not
// an accident: leftover fee cents go to the earliest-seen participants.
func ParticipantSet(p models.Purchase) []string {
	seen := make(map[string]bool)
	var ordered []string
	for _, item := range p.Items {
		for _, id := range item.ParticipantIDs {
			if !seen[id] {
				seen[id] = true
				ordered = append(ordered, id)
			}
		}
	}
	return ordered
}

// itemShare is one person's equal share of an item, rounded half up on
// the real quotient. Items round independently, so a purchase's item
// shares may drift from the item's price by up to count-1 cents; that
// drift is accepted, only the fee split below is conservative.
func itemShare(priceCents int64, count int) int64 {
	return decimal.NewFromInt(priceCents).
		Div(decimal.NewFromInt(int64(count))).
		Round(0).
		IntPart()
}

// Allocate computes what each participant owes for one purchase: their
// rounded share of every item they are on, plus a largest-remainder
// share of the purchase's shared fees.
//
// Items nobody is assigned to contribute nothing (unallocated cost),
// and when no item has participants at all the result is empty, fees
// included: fees only split among people who received at least one
// item. The fee split always sums to FeeCents exactly; the remainder is
// handed out one cent at a time in participant-set order.
func Allocate(p models.Purchase) map[string]int64 {
	participants := ParticipantSet(p)
	if len(participants) == 0 {
		return map[string]int64{}
	}

	owed := make(map[string]int64, len(participants))
	for _, id := range participants {
		owed[id] = 0
	}

	for _, item := range p.Items {
		ids := uniqueIDs(item.ParticipantIDs)
		if len(ids) == 0 {
			continue
		}
		share := itemShare(item.PriceCents, len(ids))
		for _, id := range ids {
			owed[id] += share
		}
	}

	if p.FeeCents > 0 {
		n := int64(len(participants))
		base := p.FeeCents / n
		remainder := p.FeeCents - base*n
		for i, id := range participants {
			owed[id] += base
			if int64(i) < remainder {
				owed[id]++
			}
		}
	}

	return owed
}

// uniqueIDs collapses duplicate IDs, keeping first-appearance order.
// Listing someone twice on an item counts once.
func uniqueIDs(ids []string) []string {
	if len(ids) <= 1 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
