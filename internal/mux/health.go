package mux

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Stage   string `json:"stage"`
	Hands   int    `json:"hands"`
	// Connected is the number of seats with a live connection
	Connected int `json:"connected"`
}

// getHealth reports the server version and whether the table is still dealing.
// A halted table is not a failed server, so it is reported with a 200.
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := m.pitBoss.Dealer().Snapshot()
		payload := healthResponse{
			Status:  "OK",
			Version: m.version,
			Stage:   snap.Stage.String(),
			Hands:   snap.Hands,
		}

		for _, connected := range snap.Connected {
			if connected {
				payload.Connected++
			}
		}

		select {
		case <-m.pitBoss.Done():
			payload.Status = "CLOSED"
		default:
		}

		writeJSON(w, http.StatusOK, payload)
	}
}
