package mux

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	gmux "github.com/gorilla/mux"

	"holdem-server/pkg/room"
)

type ctxKey int

const (
	ctxSeatKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	pitBoss *room.PitBoss

	// ticketed tracks the seats that have been issued a ticket
	ticketLock sync.Mutex
	ticketed   map[int]bool
}

type config struct {
	// ticketsEnabled requires a signed seat ticket to connect to a seat
	ticketsEnabled bool
	// seats is the number of seats that can be joined
	seats int
}

// NewMux returns a new HTTP mux
// The PitBoss must already be on shift.
func NewMux(version string, pitBoss *room.PitBoss, ticketsEnabled bool, seats int) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		config: config{
			ticketsEnabled: ticketsEnabled,
			seats:          seats,
		},
		ticketed: make(map[int]bool),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())

	sr := r.PathPrefix("/table/seat/{seat:[0-9]+}").Subrouter()
	sr.Use(this.seatMiddleware)
	sr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableSeatWS())
	sr.Methods(http.MethodPost).Path("/ticket").Handler(this.postTableSeatTicket())

	return this
}

// seatMiddleware validates the seat in the path and stores it in the request context
func (m *Mux) seatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seat, err := strconv.Atoi(gmux.Vars(r)["seat"])
		if err != nil || seat < 0 || seat >= m.config.seats {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSeatKey, seat)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
