package spin

// Package spin contains the selection and animation engine: the state
// machine driving fetch, spin, and settle transitions, the randomized
// target-position computation, the ease-out braking curve, and click
// scheduling on virtual row crossings. The per-frame Tick path never blocks
// and does no I/O.
