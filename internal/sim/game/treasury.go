package game

// TreasurySnapshot is one turn's cash-flow record.
type TreasurySnapshot struct {
	Turn     int
	Initial  int
	Income   int
	Expenses int
}

func (s TreasurySnapshot) Closing() int { return s.Initial + s.Income - s.Expenses }

// treasuryHistoryLength bounds the retained per-turn snapshots.
const treasuryHistoryLength = 20

// Treasury tracks a civilization's cash alongside a bounded history of
// per-turn income/expense snapshots. The balance may go negative.
type Treasury struct {
	balance  int
	income   int
	expenses int
	history  []TreasurySnapshot
}

func NewTreasury(balance int) *Treasury {
	return &Treasury{balance: balance}
}

func (t *Treasury) Balance() int { return t.balance }

// Add records income (amount > 0) or an expense (amount < 0) and applies it
// to the balance.
func (t *Treasury) Add(amount int) {
	if amount >= 0 {
		t.income += amount
	} else {
		t.expenses += -amount
	}
	t.balance += amount
}

// TrySpend deducts amount only if the balance covers it.
func (t *Treasury) TrySpend(amount int) bool {
	if amount < 0 || t.balance < amount {
		return false
	}
	t.Add(-amount)
	return true
}

// EndTurn snapshots the turn's cash flow and starts a fresh accumulation.
func (t *Treasury) EndTurn(turn int) {
	snap := TreasurySnapshot{
		Turn:     turn,
		Initial:  t.balance - t.income + t.expenses,
		Income:   t.income,
		Expenses: t.expenses,
	}
	t.history = append(t.history, snap)
	if len(t.history) > treasuryHistoryLength {
		t.history = t.history[len(t.history)-treasuryHistoryLength:]
	}
	t.income, t.expenses = 0, 0
}

// History returns the retained snapshots, oldest first.
func (t *Treasury) History() []TreasurySnapshot { return t.history }
