package mux

import (
	"errors"
	"net/http"

	"holdem-server/internal/jwt"
)

var errTicketIssued = errors.New("a ticket has already been issued for this seat")

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.Dealer().Snapshot())
	}
}

type ticketResponse struct {
	Seat   int    `json:"seat"`
	Ticket string `json:"ticket"`
}

// postTableSeatTicket issues the one ticket for a seat
func (m *Mux) postTableSeatTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.config.ticketsEnabled {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		seat := r.Context().Value(ctxSeatKey).(int)

		m.ticketLock.Lock()
		defer m.ticketLock.Unlock()

		if m.ticketed[seat] {
			writeJSONError(w, http.StatusConflict, errTicketIssued)
			return
		}

		ticket, err := jwt.Sign(seat)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.ticketed[seat] = true
		writeJSON(w, http.StatusCreated, ticketResponse{
			Seat:   seat,
			Ticket: ticket,
		})
	}
}

// validTicket returns true if the request carries a ticket for the seat, or if tickets are disabled
func (m *Mux) validTicket(r *http.Request, seat int) bool {
	if !m.config.ticketsEnabled {
		return true
	}

	ticketSeat, err := jwt.ValidSeat(r.FormValue("ticket"))
	return err == nil && ticketSeat == seat
}
