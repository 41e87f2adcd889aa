package room

import (
	"holdem-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping the most recent ones
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	d.lock.Lock()
	defer d.lock.Unlock()

	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// drainTableLog moves the table's pending log messages into the dealer's log
// Note: this must only be called from within the run loop
func (d *Dealer) drainTableLog() {
	for {
		select {
		case msgs := <-d.table.LogChan():
			d.addLogMessages(msgs)
		default:
			return
		}
	}
}

// LogMessages returns the most recent log messages
func (d *Dealer) LogMessages() []*playable.LogMessage {
	d.lock.RLock()
	defer d.lock.RUnlock()

	msgs := make([]*playable.LogMessage, len(d.logMessages))
	copy(msgs, d.logMessages)
	return msgs
}
