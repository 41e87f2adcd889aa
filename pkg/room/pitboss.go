package room

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/protocol"
)

// PitBoss is responsible for dispatching connections to the dealer
type PitBoss struct {
	dealer     *Dealer
	connect    chan *Client
	disconnect chan *Client

	// done is closed once the dealer's run loop has returned
	done chan struct{}
	// stopped is closed once the dispatch loop has returned
	stopped chan struct{}

	lock sync.Mutex
	err  error
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(dealer *Dealer) *PitBoss {
	return &PitBoss{
		dealer:     dealer,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Dealer returns the dealer running the table
func (p *PitBoss) Dealer() *Dealer {
	return p.dealer
}

// StartShift starts the dealer and the PitBoss run loop
func (p *PitBoss) StartShift(ctx context.Context) {
	go func() {
		err := p.dealer.Run(ctx)
		logrus.WithError(err).Info("dealer finished")

		p.lock.Lock()
		p.err = err
		p.lock.Unlock()
		close(p.done)
	}()

	go p.runLoop(ctx)
}

// Done is closed when the table has stopped dealing
func (p *PitBoss) Done() <-chan struct{} {
	return p.done
}

// Err returns the reason the dealer stopped, nil while it is running
func (p *PitBoss) Err() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.err
}

func (p *PitBoss) runLoop(ctx context.Context) {
	defer close(p.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			select {
			case <-p.done:
				client.Send(protocol.NewNack())
				client.Close(ErrTableHalted.Error())
			default:
				p.dealer.AddClient(client)
			}
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			if p.dealer.RemoveClient(client) {
				logrus.Debug("no clients connected")
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	select {
	case p.connect <- client:
	case <-p.stopped:
		client.Close("server is shutting down")
	}
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	select {
	case p.disconnect <- client:
	case <-p.stopped:
		client.disconnected()
	}
}

// WaitForClients blocks until every connected client has written its last message or ctx is done
func (p *PitBoss) WaitForClients(ctx context.Context) error {
	for _, client := range p.dealer.Clients() {
		select {
		case <-client.Drained():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
