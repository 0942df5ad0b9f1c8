package checkin

import "etik/pkg/etikapi"

// Derive computes the expanded/selected/disabled flags of every ticket in
// tx for the given page mode and station filter.
//
// Check-in: a ticket is enabled and pre-selected only when its latest
// history entry is not a check-in and it is in scope.
// Check-out: only when its latest entry is a check-in and it is in scope.
// Everything else is disabled and unselected.
func Derive(mode Mode, tx *Transaction, filter Filter) Selection {
	sel := Selection{Mode: mode}
	if tx == nil {
		sel.AllDisabled = true
		return sel
	}

	for _, line := range tx.TransactionTicketCategories {
		showID := line.TicketCategory.ShowID
		if showID == 0 && line.TicketCategory.Show != nil {
			showID = line.TicketCategory.Show.ID
		}
		categoryID := line.TicketCategory.ID
		if categoryID == 0 {
			categoryID = line.TicketCategoryID
		}
		inScope := filter.Contains(showID, categoryID)

		group := GroupState{
			TransactionTicketCategoryID: line.ID,
			CategoryID:                  categoryID,
			CategoryName:                line.TicketCategory.Name,
			ShowID:                      showID,
			Expanded:                    inScope,
			Tickets:                     make([]TicketState, 0, len(line.Tickets)),
		}

		for _, ticket := range line.Tickets {
			state := deriveTicket(mode, ticket, showID, categoryID, inScope)
			if !state.Disabled {
				sel.Enabled++
			}
			sel.Total++
			group.Tickets = append(group.Tickets, state)
		}
		sel.Groups = append(sel.Groups, group)
	}

	sel.AllDisabled = sel.Enabled == 0
	return sel
}

func deriveTicket(mode Mode, ticket Ticket, showID, categoryID int64, inScope bool) TicketState {
	latest := LatestEvent(ticket.HistoryCheckIns)
	checkedIn := latest != nil && latest.Type == etikapi.HistoryCheckInType
	checkedOut := latest != nil && latest.Type == etikapi.HistoryCheckOutType

	var eligible bool
	switch mode {
	case ModeCheckIn:
		eligible = !checkedIn && inScope
	case ModeCheckOut:
		eligible = checkedIn && !checkedOut && inScope
	}

	return TicketState{
		TicketID:   ticket.ID,
		Code:       ticket.Code,
		HolderName: ticket.HolderName,
		Status:     ticket.Status,
		ShowID:     showID,
		CategoryID: categoryID,
		Latest:     latest,
		CheckedIn:  checkedIn,
		CheckedOut: checkedOut,
		InScope:    inScope,
		Selected:   eligible,
		Disabled:   !eligible,
	}
}

// Ticket finds a derived ticket by id
func (s Selection) Ticket(ticketID int64) (TicketState, bool) {
	for _, g := range s.Groups {
		for _, t := range g.Tickets {
			if t.TicketID == ticketID {
				return t, true
			}
		}
	}
	return TicketState{}, false
}
