// SPDX-License-Identifier: MIT
// Package: slhnet/builder
//
// netlist.go - the mutable network description filled in by constructors.
//
// Contract:
//   - Components keep their insertion order; Port.Component indexes it.
//   - Every output and every input carries at most one link.
//   - Circuit closes the links in insertion order via circuit.Connect.

package builder

import "github.com/katalvlaran/slhnet/circuit"

// Netlist collects components and the links between their ports.
// The zero value is not usable; call NewNetlist.
type Netlist struct {
	components  []circuit.Circuit
	connections []circuit.Connection
	usedOut     map[circuit.Port]bool
	usedIn      map[circuit.Port]bool
}

// NewNetlist returns an empty netlist.
func NewNetlist() *Netlist {
	return &Netlist{
		usedOut: make(map[circuit.Port]bool),
		usedIn:  make(map[circuit.Port]bool),
	}
}

// Add appends c and returns its component index.
func (n *Netlist) Add(c circuit.Circuit) int {
	n.components = append(n.components, c)
	return len(n.components) - 1
}

// Link feeds output port from into input port to.
func (n *Netlist) Link(from, to circuit.Port) error {
	if err := n.checkPort(from); err != nil {
		return err
	}
	if err := n.checkPort(to); err != nil {
		return err
	}
	if n.usedOut[from] {
		return builderErrorf("Link", ErrPortInUse, "output %+v", from)
	}
	if n.usedIn[to] {
		return builderErrorf("Link", ErrPortInUse, "input %+v", to)
	}
	n.usedOut[from], n.usedIn[to] = true, true
	n.connections = append(n.connections, circuit.Connection{From: from, To: to})

	return nil
}

func (n *Netlist) checkPort(p circuit.Port) error {
	if p.Component < 0 || p.Component >= len(n.components) {
		return builderErrorf("Link", ErrBadPort, "component %d of %d", p.Component, len(n.components))
	}
	if p.Port < 0 || p.Port >= n.components[p.Component].CDim() {
		return builderErrorf("Link", ErrBadPort, "port %d of component %d", p.Port, p.Component)
	}
	return nil
}

// Len returns the number of components.
func (n *Netlist) Len() int { return len(n.components) }

// Components returns a copy of the component list.
func (n *Netlist) Components() []circuit.Circuit {
	return append([]circuit.Circuit(nil), n.components...)
}

// Connections returns a copy of the links in insertion order.
func (n *Netlist) Connections() []circuit.Connection {
	return append([]circuit.Connection(nil), n.connections...)
}

// OpenChannels is the channel count of the closed network.
func (n *Netlist) OpenChannels() int {
	total := 0
	for _, c := range n.components {
		total += c.CDim()
	}
	return total - len(n.connections)
}

// Circuit concatenates the components and closes every link.
func (n *Netlist) Circuit(opts ...circuit.ConnectOption) (circuit.Circuit, error) {
	return circuit.Connect(n.components, n.connections, opts...)
}
