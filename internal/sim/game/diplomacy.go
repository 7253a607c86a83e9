package game

// Diplomacy owns message scheduling and the minimal relational state the
// engine needs (contacts, wars, seats of government). Proposal semantics and
// AI responses live outside the engine.

type DiplomacyMessageKind int

const (
	MessageProposal DiplomacyMessageKind = iota
	MessageStatement
	MessageResponse
	MessageWarDeclaration
)

// DiplomacyMessage is an outbound item awaiting delivery. Delivery happens
// during the diplomacy phase of the turn named by DeliverOnTurn.
type DiplomacyMessage struct {
	From          CivID
	To            CivID
	Kind          DiplomacyMessageKind
	Text          string
	DeliverOnTurn int
}

// PendingResponse is a queued accept/reject of an earlier proposal, resolved
// before deliveries each turn.
type PendingResponse struct {
	From     CivID
	To       CivID
	Proposal string
	Accept   bool
}

// Diplomat is one civilization's diplomatic ledger entry.
type Diplomat struct {
	CivID            CivID
	SeatOfGovernment GameID
	Contacts         map[CivID]bool
	AtWar            map[CivID]bool
}

func newDiplomat(id CivID) *Diplomat {
	return &Diplomat{
		CivID:            id,
		SeatOfGovernment: InvalidGameID,
		Contacts:         make(map[CivID]bool),
		AtWar:            make(map[CivID]bool),
	}
}

type agreementKey struct {
	A CivID
	B CivID
}

func orderedPair(a, b CivID) agreementKey {
	if a > b {
		a, b = b, a
	}
	return agreementKey{A: a, B: b}
}

// Diplomacy is the shared diplomatic state of one game context.
type Diplomacy struct {
	diplomats map[CivID]*Diplomat
	// Agreements records accepted proposals per civilization pair.
	Agreements map[agreementKey][]string

	Outbox    []*DiplomacyMessage
	Responses []*PendingResponse
}

func NewDiplomacy() *Diplomacy {
	return &Diplomacy{
		diplomats:  make(map[CivID]*Diplomat),
		Agreements: make(map[agreementKey][]string),
	}
}

// Diplomat returns (creating on first use) the entry for civ.
func (d *Diplomacy) Diplomat(civ CivID) *Diplomat {
	dip := d.diplomats[civ]
	if dip == nil {
		dip = newDiplomat(civ)
		d.diplomats[civ] = dip
	}
	return dip
}

// EstablishContact records mutual awareness between two civilizations.
func (d *Diplomacy) EstablishContact(a, b CivID) {
	d.Diplomat(a).Contacts[b] = true
	d.Diplomat(b).Contacts[a] = true
}

// DeclareWar flips both sides to a war footing.
func (d *Diplomacy) DeclareWar(a, b CivID) {
	d.Diplomat(a).AtWar[b] = true
	d.Diplomat(b).AtWar[a] = true
}

// Send queues a message for delivery on or after turn.
func (d *Diplomacy) Send(m *DiplomacyMessage) {
	d.Outbox = append(d.Outbox, m)
}

// QueueResponse schedules an accept/reject for the next diplomacy phase.
func (d *Diplomacy) QueueResponse(r *PendingResponse) {
	d.Responses = append(d.Responses, r)
}

// RecordAgreement stores an accepted proposal for the pair.
func (d *Diplomacy) RecordAgreement(a, b CivID, proposal string) {
	key := orderedPair(a, b)
	d.Agreements[key] = append(d.Agreements[key], proposal)
}

// ContactedEmpires lists civ's contacts that are empires, in id order.
func (d *Diplomacy) ContactedEmpires(g *GameContext, civ CivID) []CivID {
	dip := d.Diplomat(civ)
	var out []CivID
	for _, other := range g.Civilizations {
		if other.ID == civ || !other.IsEmpire {
			continue
		}
		if dip.Contacts[other.ID] {
			out = append(out, other.ID)
		}
	}
	return out
}
