// SPDX-License-Identifier: MIT

package circuit

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/operator"
)

// Port addresses channel Port of components[Component].
type Port struct {
	Component int
	Port      int
}

// Connection wires output From to input To.
type Connection struct {
	From Port
	To   Port
}

// ConnectOption configures Connect.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	forceSLH bool
}

// WithForceSLH converts the wired network to its SLH form before the
// feedback loops are closed.
func WithForceSLH() ConnectOption {
	return func(o *connectOptions) { o.forceSLH = true }
}

// Connect concatenates components and closes one feedback loop per
// connection. The loop ports are first routed to the last channels; the
// unconnected channels keep their relative order.
func Connect(components []Circuit, connections []Connection, opts ...ConnectOption) (Circuit, error) {
	var o connectOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Stage 1 (Validate): resolve ports to channel indices.
	offsets := make([]int, len(components))
	n := 0
	for i, c := range components {
		offsets[i] = n
		n += c.CDim()
	}
	resolve := func(p Port) (int, error) {
		if p.Component < 0 || p.Component >= len(components) {
			return 0, errors.Wrapf(ErrDimensionMismatch, "component %d of %d", p.Component, len(components))
		}
		if p.Port < 0 || p.Port >= components[p.Component].CDim() {
			return 0, errors.Wrapf(ErrDimensionMismatch, "port %d of component %d", p.Port, p.Component)
		}
		return offsets[p.Component] + p.Port, nil
	}
	nfb := len(connections)
	if nfb > n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%d connections for %d channels", nfb, n)
	}
	omap := make(map[int]int, nfb)
	imap := make(map[int]int, nfb)
	for k, conn := range connections {
		op, err := resolve(conn.From)
		if err != nil {
			return nil, err
		}
		ip, err := resolve(conn.To)
		if err != nil {
			return nil, err
		}
		if _, dup := omap[op]; dup {
			return nil, errors.Wrapf(ErrDimensionMismatch, "output port %+v connected twice", conn.From)
		}
		omap[op] = n - nfb + k
		imap[n-nfb+k] = ip
	}

	// Stage 2 (Route): omapping << combined << imapping.
	combined, err := Concat(components...)
	if err != nil {
		return nil, err
	}
	omapping, err := MapSignalsCircuit(omap, n)
	if err != nil {
		return nil, errors.Wrap(err, "connect: output ports")
	}
	imapping, err := MapSignalsCircuit(imap, n)
	if err != nil {
		return nil, errors.Wrap(err, "connect: input ports")
	}
	if combined, err = Series(omapping, combined, imapping); err != nil {
		return nil, err
	}
	if o.forceSLH {
		s, err := ToSLH(combined)
		if err != nil {
			return nil, err
		}
		combined = s
	}

	// Stage 3 (Close): one feedback per connection on the last port.
	for k := 0; k < nfb; k++ {
		if combined, err = FB(combined); err != nil {
			return nil, errors.Wrapf(err, "connect: loop %d", k)
		}
		if s, ok := combined.(*SLH); ok {
			combined = s.Expand()
		}
	}

	return combined, nil
}

// CoherentInput drives the inputs of c with constant amplitudes, one per
// channel. A zero amplitude leaves its channel untouched.
func CoherentInput(c Circuit, amps ...operator.Operator) (Circuit, error) {
	if len(amps) != c.CDim() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%d amplitudes for cdim %d", len(amps), c.CDim())
	}
	drives := make([]Circuit, len(amps))
	for i, a := range amps {
		if a.IsZero() {
			drives[i] = CIdentity
			continue
		}
		d, err := NewSLH(operator.IdentityMatrix(1), operator.Column(a), operator.Zero())
		if err != nil {
			return nil, err
		}
		drives[i] = d
	}
	drive, err := Concat(drives...)
	if err != nil {
		return nil, err
	}

	return Series(c, drive)
}
