// Package services turns a finalized quote into its output artifacts:
// the payment schedule, the branded PDF, and the accounting export files.
package services

import "quotebuilder/quote"

// Installment is one weekly payment of the remaining balance.
type Installment struct {
	Week   int
	Amount quote.Money
}

// Schedule is the payment plan for a quote: a 20% deposit due on acceptance
// followed by one installment per project week.
type Schedule struct {
	Deposit      quote.Money
	Installments []Installment
}

// Total returns deposit plus all installments.
func (s Schedule) Total() quote.Money {
	sum := s.Deposit
	for _, inst := range s.Installments {
		sum += inst.Amount
	}
	return sum
}

// ComputeSchedule splits total into a 20% deposit and weeks equal
// installments. The deposit is rounded half up to the cent; the remaining
// balance is divided evenly, with the sub-week remainder absorbed by the
// last installment, so Deposit + Σ installments equals total exactly for any
// input — including totals below one cent per week, where the base
// installment is zero and the final one carries everything. Pure and
// deterministic, so it is safe to call repeatedly for previews.
func ComputeSchedule(total quote.Money, weeks int) (Schedule, error) {
	if total < 0 || weeks < 1 {
		return Schedule{}, ErrInvalidScheduleInput
	}

	deposit := quote.Money((int64(total)*20 + 50) / 100)
	remaining := total - deposit
	base := quote.Money(int64(remaining) / int64(weeks))

	s := Schedule{
		Deposit:      deposit,
		Installments: make([]Installment, weeks),
	}
	for i := range s.Installments {
		s.Installments[i] = Installment{Week: i + 1, Amount: base}
	}
	s.Installments[weeks-1].Amount = remaining - base*quote.Money(weeks-1)
	return s, nil
}
