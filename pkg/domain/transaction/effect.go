package transaction

import "github.com/shopspring/decimal"

// Adjustment is a relative change to a target's stored figure: the current
// balance of an account or the current spent of a credit card.
type Adjustment struct {
	Target Target
	Delta  decimal.Decimal
}

// Delta is the signed effect of t on its target.
//
//	account:     income +amount, expense -amount
//	credit card: expense +amount, income -amount
func (t *Transaction) Delta() decimal.Decimal {
	return SignedAmount(t.Target.Kind, t.Type, t.Amount)
}

// SignedAmount applies the sign convention for kind and type to amount.
func SignedAmount(kind TargetKind, t Type, amount decimal.Decimal) decimal.Decimal {
	positive := t == Income
	if kind == TargetCreditCard {
		positive = t == Expense
	}
	if positive {
		return amount
	}
	return amount.Neg()
}

// Plan returns the adjustments that move stored figures from the state with
// old applied to the state with updated applied. Either side may be nil:
// old == nil is a create, updated == nil is a delete.
//
// The old effect is always reversed on the old target, so retargeting a
// transaction restores the original account or card. When both sides hit the
// same target the two effects collapse into one adjustment. Zero deltas are
// omitted.
func Plan(old, updated *Transaction) []Adjustment {
	var adj []Adjustment
	add := func(target Target, delta decimal.Decimal) {
		for i := range adj {
			if adj[i].Target == target {
				adj[i].Delta = adj[i].Delta.Add(delta)
				return
			}
		}
		adj = append(adj, Adjustment{Target: target, Delta: delta})
	}
	if old != nil {
		add(old.Target, old.Delta().Neg())
	}
	if updated != nil {
		add(updated.Target, updated.Delta())
	}

	out := adj[:0]
	for _, a := range adj {
		if !a.Delta.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
