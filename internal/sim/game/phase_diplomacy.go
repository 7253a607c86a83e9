package game

// doDiplomacy resolves queued accept/reject responses, then delivers every
// outbound message due this turn. Proposal semantics belong to the diplomacy
// collaborators; only scheduling and delivery happen here.
func (e *Engine) doDiplomacy(g *GameContext) error {
	d := g.Diplomacy

	for _, r := range d.Responses {
		if r.Accept {
			d.RecordAgreement(r.From, r.To, r.Proposal)
		}
		d.Send(&DiplomacyMessage{
			From:          r.From,
			To:            r.To,
			Kind:          MessageResponse,
			Text:          r.Proposal,
			DeliverOnTurn: g.TurnNumber,
		})
	}
	d.Responses = nil

	var pending []*DiplomacyMessage
	for _, msg := range d.Outbox {
		if msg.DeliverOnTurn > g.TurnNumber {
			pending = append(pending, msg)
			continue
		}
		e.deliverMessage(g, msg)
	}
	d.Outbox = pending
	return nil
}

func (e *Engine) deliverMessage(g *GameContext, msg *DiplomacyMessage) {
	g.Diplomacy.EstablishContact(msg.From, msg.To)

	if msg.Kind == MessageWarDeclaration {
		g.Diplomacy.DeclareWar(msg.From, msg.To)
	}

	to := g.Civilization(msg.To)
	m := g.Manager(msg.To)
	if to == nil || m == nil || !to.IsEmpire {
		return
	}
	if msg.Kind == MessageWarDeclaration {
		m.AddSitRep(&SitRep{
			Kind:     SitRepWarDeclared,
			Priority: PriorityRed,
			Turn:     g.TurnNumber,
			OtherCiv: msg.From,
		})
		return
	}
	m.AddSitRep(&SitRep{
		Kind:     SitRepDiplomaticMessage,
		Priority: PriorityYellow,
		Turn:     g.TurnNumber,
		OtherCiv: msg.From,
		Detail:   msg.Text,
	})
}
