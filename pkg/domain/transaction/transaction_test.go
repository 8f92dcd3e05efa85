package transaction

import (
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(id uuid.UUID) Target {
	return Target{Kind: TargetAccount, ID: id}
}

func card(id uuid.UUID) Target {
	return Target{Kind: TargetCreditCard, ID: id}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	user := uuid.New()
	acc := account(uuid.New())
	day := time.Date(2025, 3, 14, 18, 30, 0, 0, time.FixedZone("CLT", -3*3600))

	tests := []struct {
		name    string
		target  Target
		amount  string
		typ     Type
		date    time.Time
		wantErr error
	}{
		{"valid expense", acc, "30", Expense, day, nil},
		{"valid card expense", card(uuid.New()), "200.50", Expense, day, nil},
		{"zero amount", acc, "0", Expense, day, ErrAmountMustBePositive},
		{"negative amount", acc, "-5", Income, day, ErrAmountMustBePositive},
		{"three decimals", acc, "1.005", Income, day, ErrTooManyDecimals},
		{"bad type", acc, "1", Type("transfer"), day, ErrInvalidType},
		{"bad target kind", Target{Kind: "wallet", ID: uuid.New()}, "1", Income, day, ErrInvalidTargetKind},
		{"missing target", Target{Kind: TargetAccount}, "1", Income, day, ErrTargetRequired},
		{"card income", card(uuid.New()), "10", Income, day, ErrCardRequiresExpense},
		{"missing date", acc, "1", Income, time.Time{}, ErrDateRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := New(user, tc.target, nil, tc.date, dec(tc.amount), "  lunch ", tc.typ)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "lunch", tx.Description)
			assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), tx.Date)
		})
	}
}

func TestSignedAmount(t *testing.T) {
	t.Parallel()
	amt := dec("30")
	assert.True(t, SignedAmount(TargetAccount, Income, amt).Equal(dec("30")))
	assert.True(t, SignedAmount(TargetAccount, Expense, amt).Equal(dec("-30")))
	assert.True(t, SignedAmount(TargetCreditCard, Expense, amt).Equal(dec("30")))
	assert.True(t, SignedAmount(TargetCreditCard, Income, amt).Equal(dec("-30")))
}

func TestPlan(t *testing.T) {
	t.Parallel()
	a1, a2, c1 := account(uuid.New()), account(uuid.New()), card(uuid.New())
	mk := func(target Target, typ Type, amount string) *Transaction {
		return &Transaction{Target: target, Type: typ, Amount: dec(amount)}
	}

	tests := []struct {
		name string
		old  *Transaction
		upd  *Transaction
		want map[Target]string
	}{
		{
			name: "create expense on account",
			upd:  mk(a1, Expense, "30"),
			want: map[Target]string{a1: "-30"},
		},
		{
			name: "create expense on card",
			upd:  mk(c1, Expense, "200"),
			want: map[Target]string{c1: "200"},
		},
		{
			name: "delete expense on account",
			old:  mk(a1, Expense, "50"),
			want: map[Target]string{a1: "50"},
		},
		{
			name: "edit amount same account",
			old:  mk(a1, Expense, "30"),
			upd:  mk(a1, Expense, "50"),
			want: map[Target]string{a1: "-20"},
		},
		{
			name: "flip type same account",
			old:  mk(a1, Expense, "30"),
			upd:  mk(a1, Income, "30"),
			want: map[Target]string{a1: "60"},
		},
		{
			name: "retarget between accounts",
			old:  mk(a1, Expense, "30"),
			upd:  mk(a2, Expense, "30"),
			want: map[Target]string{a1: "30", a2: "-30"},
		},
		{
			name: "retarget account to card",
			old:  mk(a1, Expense, "40"),
			upd:  mk(c1, Expense, "45"),
			want: map[Target]string{a1: "40", c1: "45"},
		},
		{
			name: "no-op edit",
			old:  mk(a1, Income, "10"),
			upd:  mk(a1, Income, "10"),
			want: map[Target]string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Plan(tc.old, tc.upd)
			require.Len(t, got, len(tc.want))
			for _, adj := range got {
				want, ok := tc.want[adj.Target]
				require.True(t, ok, "unexpected target %s", adj.Target)
				assert.True(t, adj.Delta.Equal(dec(want)), "%s: got %s want %s", adj.Target, adj.Delta, want)
			}
		})
	}
}

// The stored figure after any create/update/delete sequence equals the
// opening figure plus the signed sum of the surviving transactions.
func TestPlan_SequenceMatchesRecomputation(t *testing.T) {
	t.Parallel()
	a1, a2 := account(uuid.New()), account(uuid.New())
	stored := map[Target]decimal.Decimal{a1: dec("100"), a2: dec("0")}
	opening := map[Target]decimal.Decimal{a1: dec("100"), a2: dec("0")}
	live := map[int]*Transaction{}

	apply := func(old, upd *Transaction) {
		for _, adj := range Plan(old, upd) {
			stored[adj.Target] = stored[adj.Target].Add(adj.Delta)
		}
	}
	ops := []struct {
		id  int
		upd *Transaction
	}{
		{1, &Transaction{Target: a1, Type: Expense, Amount: dec("30")}},
		{2, &Transaction{Target: a1, Type: Income, Amount: dec("12.5")}},
		{1, &Transaction{Target: a1, Type: Expense, Amount: dec("50")}},
		{2, &Transaction{Target: a2, Type: Income, Amount: dec("12.5")}},
		{3, &Transaction{Target: a2, Type: Expense, Amount: dec("7.25")}},
		{1, nil},
		{3, &Transaction{Target: a1, Type: Income, Amount: dec("1")}},
	}
	for _, op := range ops {
		apply(live[op.id], op.upd)
		if op.upd == nil {
			delete(live, op.id)
		} else {
			live[op.id] = op.upd
		}
	}

	expected := map[Target]decimal.Decimal{a1: opening[a1], a2: opening[a2]}
	for _, tx := range live {
		expected[tx.Target] = expected[tx.Target].Add(tx.Delta())
	}
	for target, want := range expected {
		assert.True(t, stored[target].Equal(want), "%s: stored %s expected %s", target, stored[target], want)
	}
}
