package checkin

import (
	"errors"
	"fmt"

	"etik/pkg/etikapi"
)

var (
	ErrNothingSelected   = errors.New("no ticket selected")
	ErrTicketNotFound    = errors.New("ticket does not belong to this transaction")
	ErrTicketNotEligible = errors.New("ticket is not eligible")
)

// BuildSubmission turns the operator's choice into a check-in/check-out
// payload. A nil ticketIDs submits the pre-selected tickets. A line item
// whose tickets are all chosen is sent as a whole, otherwise by ticket id.
func BuildSubmission(tx *Transaction, sel Selection, ticketIDs []int64) (etikapi.CheckInPayload, int, error) {
	chosen := make(map[int64]bool)
	if ticketIDs == nil {
		for _, g := range sel.Groups {
			for _, t := range g.Tickets {
				if t.Selected {
					chosen[t.TicketID] = true
				}
			}
		}
	} else {
		for _, id := range ticketIDs {
			state, ok := sel.Ticket(id)
			if !ok {
				return etikapi.CheckInPayload{}, 0, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
			}
			if state.Disabled {
				return etikapi.CheckInPayload{}, 0, fmt.Errorf("ticket %d cannot be %s: %w", id, sel.Mode.Verb(), ErrTicketNotEligible)
			}
			chosen[id] = true
		}
	}

	if len(chosen) == 0 {
		return etikapi.CheckInPayload{}, 0, ErrNothingSelected
	}

	payload := etikapi.CheckInPayload{TransactionID: tx.ID}
	for _, g := range sel.Groups {
		var ids []int64
		for _, t := range g.Tickets {
			if chosen[t.TicketID] {
				ids = append(ids, t.TicketID)
			}
		}
		if len(ids) == 0 {
			continue
		}

		item := etikapi.CheckInItem{TransactionTicketCategoryID: g.TransactionTicketCategoryID}
		if len(ids) == len(g.Tickets) {
			item.IsAll = true
		} else {
			item.TicketIDs = ids
		}
		payload.Items = append(payload.Items, item)
	}

	return payload, len(chosen), nil
}
