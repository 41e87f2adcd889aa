package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/protocol"
)

// ErrTableHalted is returned from Run when fewer than two seats can play another hand
var ErrTableHalted = errors.New("table halted")

var errTurnTimeout = errors.New("seat did not act in time")
var errSeatDisconnected = errors.New("seat is disconnected")

// Options configures the dealer
type Options struct {
	// TurnTimeout is how long a seat has to act, zero waits forever
	TurnTimeout time.Duration

	// JoinTimeout is how long to wait for the remaining seats once two have joined,
	// zero waits for every seat
	JoinTimeout time.Duration
}

// Dealer runs the hands at a table
// The table is only ever touched from the goroutine running Run.
type Dealer struct {
	table  *texasholdem.Table
	opts   Options
	logger logrus.FieldLogger

	join chan *Client

	lock        sync.RWMutex
	clients     [texasholdem.MaxPlayers]*Client
	state       texasholdem.State
	handID      string
	hands       int
	logMessages []*playable.LogMessage
}

// NewDealer creates a new dealer object
func NewDealer(table *texasholdem.Table, opts Options, logger logrus.FieldLogger) *Dealer {
	d := &Dealer{
		table:  table,
		opts:   opts,
		logger: logger,
		join:   make(chan *Client, 16),
	}

	d.state = table.State()
	return d
}

// AddClient hands a connection to the dealer
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	select {
	case d.join <- client:
	default:
		client.Send(protocol.NewNack())
		client.Close("table is busy")
	}
}

// RemoveClient is called when a connection goes away
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	if client.Seat >= 0 && client.Seat < len(d.clients) && d.clients[client.Seat] == client {
		d.clients[client.Seat] = nil
	}

	nClients := 0
	for _, c := range d.clients {
		if c != nil {
			nClients++
		}
	}
	d.lock.Unlock()

	client.disconnected()
	return nClients == 0
}

func (d *Dealer) client(seat int) *Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.clients[seat]
}

// Clients will return the connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for _, c := range d.clients {
		if c != nil {
			clients = append(clients, c)
		}
	}

	return clients
}

// Run seats the players and deals hands until the table halts or ctx is cancelled
func (d *Dealer) Run(ctx context.Context) error {
	d.logger.Debug("creating dealer run loop")
	defer d.logger.Debug("terminating dealer run loop")

	if err := d.seatPlayers(ctx); err != nil {
		return err
	}

	for {
		if err := d.playHand(ctx); err != nil {
			return err
		}
	}
}

// seatPlayers runs the JOIN stage
func (d *Dealer) seatPlayers(ctx context.Context) error {
	want := d.table.Options().Seats
	var deadline <-chan time.Time

	for d.table.JoinedCount() < want {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case client := <-d.join:
			d.seatClient(client)
			if deadline == nil && d.opts.JoinTimeout > 0 && d.table.JoinedCount() >= 2 {
				deadline = time.After(d.opts.JoinTimeout)
			}
		case <-deadline:
			d.logger.WithField("joined", d.table.JoinedCount()).Info("join timeout, starting with the seats present")
			return nil
		}
	}

	return nil
}

func (d *Dealer) seatClient(client *Client) {
	log := d.logger.WithField("seat", client.Seat)
	if err := d.table.Join(client.Seat); err != nil {
		log.WithError(err).Warn("could not join")
		client.Send(protocol.NewNack())
		client.Close(err.Error())
		return
	}

	d.lock.Lock()
	d.clients[client.Seat] = client
	d.lock.Unlock()

	select {
	case <-client.Gone():
		// the transport went away before the dealer saw the join
		d.RemoveClient(client)
	default:
	}

	log.Info("seat joined")
	client.Send(protocol.NewAck())
	d.publish()
}

// rejectLateJoin turns away connections that arrive after the JOIN stage
func (d *Dealer) rejectLateJoin(client *Client) {
	d.logger.WithField("seat", client.Seat).Warn("join after the table started")
	client.Send(protocol.NewNack())
	client.Close(texasholdem.ErrWrongStage.Error())
}

// turnTimer starts the clock for one turn. The returned channel is nil when turns never time out.
func (d *Dealer) turnTimer() (<-chan time.Time, func()) {
	if d.opts.TurnTimeout <= 0 {
		return nil, func() {}
	}

	timer := time.NewTimer(d.opts.TurnTimeout)
	return timer.C, func() { timer.Stop() }
}

// receive blocks until the seat sends an action, timeout fires,
// the seat disconnects or ctx is cancelled
func (d *Dealer) receive(ctx context.Context, seat int, timeout <-chan time.Time) (protocol.ClientAction, error) {
	client := d.client(seat)
	if client == nil {
		return protocol.ClientAction{}, errSeatDisconnected
	}

	for {
		select {
		case <-ctx.Done():
			return protocol.ClientAction{}, ctx.Err()
		case msg := <-client.inbox:
			return msg, nil
		case <-client.Gone():
			return protocol.ClientAction{}, errSeatDisconnected
		case <-timeout:
			return protocol.ClientAction{}, errTurnTimeout
		case late := <-d.join:
			d.rejectLateJoin(late)
		}
	}
}

func (d *Dealer) send(seat int, msg protocol.ServerMessage) {
	if client := d.client(seat); client != nil {
		client.Send(msg)
	}
}

// reply answers an action with ACK or NACK
func (d *Dealer) reply(seat int, outcome texasholdem.Outcome) {
	if outcome == texasholdem.Accepted {
		d.send(seat, protocol.NewAck())
	} else {
		d.send(seat, protocol.NewNack())
	}
}

// broadcastInfo sends every seat at the table its own snapshot
func (d *Dealer) broadcastInfo() {
	st := d.table.State()
	for _, seat := range d.table.SeatsAtTable() {
		d.send(seat, protocol.BuildInfo(st, seat))
	}
}

// publish drains the table log and stores a copy of the table for readers
// Note: this must only be called from within the run loop
func (d *Dealer) publish() {
	d.drainTableLog()

	st := d.table.State()
	d.lock.Lock()
	d.state = st
	d.lock.Unlock()
}

// playHand runs INIT through END for one hand
func (d *Dealer) playHand(ctx context.Context) error {
	if err := d.intake(ctx); err != nil {
		return err
	}

	if err := d.table.StartHand(); err != nil {
		if errors.Is(err, texasholdem.ErrNotEnoughPlayers) {
			d.halt(err)
			return ErrTableHalted
		}

		return err
	}

	d.lock.Lock()
	d.hands++
	d.handID = uuid.New().String()
	handID := d.handID
	d.lock.Unlock()

	log := d.logger.WithField("hand", handID)
	log.WithFields(logrus.Fields{
		"dealer": d.table.Dealer(),
		"deck":   d.table.DeckHash(),
	}).Info("starting hand")
	d.publish()

	for _, stage := range texasholdem.BettingStages {
		d.table.DealStage(stage)
		round := d.table.NewBettingRound()
		d.publish()
		d.broadcastInfo()

		handOver, err := d.bet(ctx, log.WithField("stage", stage.String()), round)
		if err != nil {
			return err
		}

		if handOver {
			break
		}
	}

	result := d.table.Settle()
	d.publish()

	end := protocol.BuildEnd(d.table.State(), result)
	for _, seat := range d.table.SeatsAtTable() {
		d.send(seat, end)
	}

	log.WithFields(logrus.Fields{
		"winners": result.Winners,
		"pot":     result.Pot,
		"byFold":  result.ByFold,
	}).Info("hand over")

	return nil
}

// intake asks every seat at the table whether it plays the next hand
func (d *Dealer) intake(ctx context.Context) error {
	d.table.BeginIntake()
	d.publish()

	for _, seat := range d.table.SeatsAtTable() {
		log := d.logger.WithFields(logrus.Fields{"stage": texasholdem.StageInit.String(), "seat": seat})

		timeout, stop := d.turnTimer()
		msg, err := d.receive(ctx, seat, timeout)
		stop()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			log.WithError(err).Info("seat did not answer, leaving")
			if _, err := d.table.Apply(seat, action.Leave, 0); err != nil {
				return fmt.Errorf("could not remove seat %d: %w", seat, err)
			}

			continue
		}

		outcome, err := d.table.Apply(seat, msg.Type, msg.Amount())
		if err != nil {
			log.WithError(err).Info("rejected action, seat sits out")
		}

		d.reply(seat, outcome)
		d.publish()
	}

	return nil
}

// bet runs a betting round. It returns true if the hand is over.
// A turn's clock keeps running across rejected actions.
func (d *Dealer) bet(ctx context.Context, log logrus.FieldLogger, round *texasholdem.BettingRound) (bool, error) {
	var timeout <-chan time.Time
	stop := func() {}
	defer func() { stop() }()

	newTurn := true
	for !round.Done() {
		seat := round.Turn()
		seatLog := log.WithField("seat", seat)

		if newTurn {
			stop()
			timeout, stop = d.turnTimer()
			newTurn = false
		}

		msg, err := d.receive(ctx, seat, timeout)
		var step texasholdem.Step
		var actErr error

		switch {
		case err == nil:
			step, actErr = round.Act(seat, msg.Type, msg.Amount())
		case ctx.Err() != nil:
			return false, ctx.Err()
		default:
			seatLog.WithError(err).Info("folding seat")
			step, actErr = round.ForceFold()
			if step.Outcome == texasholdem.Rejected {
				return false, fmt.Errorf("could not fold seat %d: %w", seat, actErr)
			}
		}

		if step.Outcome == texasholdem.Rejected {
			seatLog.WithError(actErr).Debug("rejected action")
			d.reply(seat, step.Outcome)
			continue
		}

		newTurn = true
		if err == nil {
			d.reply(seat, step.Outcome)
		}

		d.publish()

		if step.HandOver {
			return true, nil
		}

		if step.Broadcast {
			d.broadcastInfo()
		}
	}

	return false, nil
}

// halt tells the seats the session is over and hangs up
func (d *Dealer) halt(reason error) {
	d.logger.WithError(reason).Warn("halting table")
	d.publish()

	for _, seat := range d.table.SeatsAtTable() {
		d.send(seat, protocol.NewHalt())
	}

	for _, client := range d.Clients() {
		client.Close(ErrTableHalted.Error())
	}
}

// TableSnapshot is a spectator's view of the table
type TableSnapshot struct {
	HandID    string                       `json:"handId"`
	Hands     int                          `json:"hands"`
	Stage     texasholdem.Stage            `json:"stage"`
	Info      *protocol.InfoMessage        `json:"info"`
	Connected [texasholdem.MaxPlayers]bool `json:"connected"`
	Log       []*playable.LogMessage       `json:"log"`
}

// Snapshot returns a copy of the table without any hole cards
// It is safe to call from any goroutine.
func (d *Dealer) Snapshot() TableSnapshot {
	d.lock.RLock()
	st := d.state
	snap := TableSnapshot{
		HandID: d.handID,
		Hands:  d.hands,
		Stage:  st.Stage,
	}

	for i, c := range d.clients {
		snap.Connected[i] = c != nil
	}
	d.lock.RUnlock()

	snap.Info = protocol.BuildInfo(st, protocol.Spectator).Info
	snap.Log = d.LogMessages()

	return snap
}
