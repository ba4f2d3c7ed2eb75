package timer

import (
	"fmt"
	"time"
)

const TickInterval = time.Second

type TicketKind string

const (
	TicketCountdown TicketKind = "countdown"
	TicketRun       TicketKind = "run"
)

type Ticket struct {
	Kind TicketKind
	Seq  uint64
}

func (t Ticket) String() string {
	return fmt.Sprintf("%s#%d", t.Kind, t.Seq)
}

func (m *Machine) schedule(kind TicketKind) {
	m.seq++
	m.pending = &Ticket{Kind: kind, Seq: m.seq}
	m.handed = false
}

func (m *Machine) cancel() {
	m.pending = nil
	m.handed = false
}

// Next hands out the pending ticket once.
func (m *Machine) Next() (Ticket, bool) {
	if m.pending == nil || m.handed {
		return Ticket{}, false
	}
	m.handed = true
	return *m.pending, true
}

func (m *Machine) Pending() (Ticket, bool) {
	if m.pending == nil {
		return Ticket{}, false
	}
	return *m.pending, true
}
