package checkin

import (
	"time"

	"etik/pkg/etikapi"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func entry(id int64, typ etikapi.HistoryType, minutes int) HistoryCheckIn {
	return HistoryCheckIn{ID: id, Type: typ, CreatedAt: t0.Add(time.Duration(minutes) * time.Minute)}
}

func ticket(id int64, history ...HistoryCheckIn) Ticket {
	return Ticket{ID: id, Code: "T-" + string(rune('A'+id%26)), Status: etikapi.TicketStatusNormal, HistoryCheckIns: history}
}

func line(id, categoryID, showID int64, name string, tickets ...Ticket) TransactionTicketCategory {
	return TransactionTicketCategory{
		ID:               id,
		TicketCategoryID: categoryID,
		TicketCategory:   etikapi.TicketCategory{ID: categoryID, Name: name, ShowID: showID},
		Tickets:          tickets,
	}
}

// sampleTransaction has a VIP line on show 1 with one checked-in ticket (1)
// and one fresh ticket (2), plus a Regular line on show 1 (ticket 3) and a
// VIP line on show 2 (ticket 4).
func sampleTransaction() *Transaction {
	return &Transaction{
		ID: 500,
		TransactionTicketCategories: []TransactionTicketCategory{
			line(11, 101, 1, "VIP",
				ticket(1, entry(1, etikapi.HistoryCheckInType, 0)),
				ticket(2),
			),
			line(12, 102, 1, "Regular", ticket(3)),
			line(13, 201, 2, "VIP Day 2", ticket(4)),
		},
	}
}
