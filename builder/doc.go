// SPDX-License-Identifier: MIT

// Package builder assembles standard circuit network topologies from
// generated components.
//
// A network is described by a Netlist: a list of components and the
// output-to-input links between them. Constructors such as Cascade, Ring,
// Star and Parallel append components and links to the netlist; BuildNetwork
// runs them in order and closes every link with circuit.Connect.
//
// The package offers:
//
//   - Configuration primitives:
//     BuilderOption mutates the builder configuration before use;
//     WithChannels sets the channel count of generated components;
//     WithComponentFn replaces the component factory (symbols by default);
//     WithForceSLH converts the network to SLH form before closing links.
//   - Component naming schemes (IDFn):
//     DefaultIDFn ("0", "1", ...), SymbolIDFn ("A" .. "Z"),
//     ExcelColumnIDFn ("A", "Z", "AA", ...), SymbolNumberIDFn(prefix).
//   - Topologies:
//     Cascade(n): component i output 0 drives component i+1 input 0.
//     Ring(n): a cascade whose last component drives the first.
//     Star(n): n-1 leaves drive the inputs of one hub.
//     Parallel(n): n unconnected components side by side.
//
// Option constructors panic on nonsensical values; topology constructors
// return sentinel errors (ErrTooFewComponents, ErrTooFewChannels, ...).
//
//	net, err := builder.BuildNetwork(
//		[]builder.BuilderOption{builder.WithSymbolIDs()},
//		builder.Cascade(2),
//	)
//	fmt.Println(net) // B << A
package builder
