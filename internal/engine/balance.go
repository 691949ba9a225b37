// Package engine computes per-member net balances from a group's expenses
// and reduces them to a short list of pairwise settlement payments.
//
// The package is pure: no I/O, no shared state, safe for concurrent use.
// Callers are responsible for fetching a consistent snapshot of expenses
// and members before invoking it.
package engine

import (
	"math"
	"sort"

	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/models"
)

// epsilon is the tolerance under which a balance counts as settled. It
// absorbs floating-point rounding from repeated currency conversions.
const epsilon = 0.01

// ComputeBalances folds a group's expenses into net per-member balances in
// baseCurrency, then derives the settlement plan.
//
// Every ID in memberIDs is seeded with a zero balance. IDs that appear only
// inside an expense (as payer or participant) still accumulate a balance:
// the map grows dynamically rather than rejecting unknown members.
//
// For each expense the payer is credited the full converted amount and every
// participant, payer included, is debited their converted share, so the payer
// nets the amount minus their own share. Expense order does not affect the
// result.
func ComputeBalances(expenses []models.Expense, memberIDs []string, baseCurrency string, conv *currency.Converter) (map[string]models.Balance, []models.Settlement) {
	balances := make(map[string]models.Balance, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = models.Balance{UserID: id, Currency: baseCurrency}
	}

	add := func(id string, delta float64) {
		b, ok := balances[id]
		if !ok {
			b = models.Balance{UserID: id, Currency: baseCurrency}
		}
		b.Amount += delta
		balances[id] = b
	}

	for _, e := range expenses {
		paid := conv.Convert(e.Amount, e.Currency, baseCurrency)
		add(e.PaidBy, paid.Amount)

		for memberID, share := range e.SplitDetails {
			owed := conv.Convert(share, e.Currency, baseCurrency)
			add(memberID, -owed.Amount)
		}
	}

	return balances, SimplifyDebts(balances, baseCurrency)
}

// party is one side of the greedy matching: a member and how much they
// still owe (debtor) or are owed (creditor), always positive.
type party struct {
	userID string
	amount float64
}

// SimplifyDebts reduces a balance map to pairwise settlements using a
// greedy largest-first matching. The result is near-minimal, not optimal:
// the minimum-transaction-count problem is NP-hard and greedy is the
// accepted approximation here.
//
// Members within epsilon of zero are excluded entirely. Emitted amounts are
// rounded to 2 decimals and always exceed epsilon, so rounding noise never
// becomes a transaction. Equal amounts tie-break on ascending user ID,
// making the output deterministic.
func SimplifyDebts(balances map[string]models.Balance, baseCurrency string) []models.Settlement {
	var debtors, creditors []party
	for id, b := range balances {
		switch {
		case b.Amount < -epsilon:
			debtors = append(debtors, party{userID: id, amount: -b.Amount})
		case b.Amount > epsilon:
			creditors = append(creditors, party{userID: id, amount: b.Amount})
		}
	}

	largestFirst := func(s []party) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].amount != s[j].amount {
				return s[i].amount > s[j].amount
			}
			return s[i].userID < s[j].userID
		}
	}
	sort.Slice(debtors, largestFirst(debtors))
	sort.Slice(creditors, largestFirst(creditors))

	// Two-pointer sweep: each iteration exhausts at least one side, so the
	// loop runs at most len(debtors)+len(creditors) times.
	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].amount, creditors[j].amount)

		if amount > epsilon {
			settlements = append(settlements, models.Settlement{
				From:     debtors[i].userID,
				To:       creditors[j].userID,
				Amount:   math.Round(amount*100) / 100,
				Currency: baseCurrency,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount < epsilon {
			i++
		}
		if creditors[j].amount < epsilon {
			j++
		}
	}

	return settlements
}
