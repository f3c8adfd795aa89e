// Package clock provides ready-made fate timer implementations for common
// modelling needs: fixed deadlines, log-normally distributed clocks, pulse
// signals and silenceable wrappers.
//
// The engine core deliberately prescribes no probability distribution; the
// timers here are extensions in the same sense as user-supplied ones and go
// through exactly the same Step/Inherit contract. All stochastic timers take
// an explicit *rand.Rand so runs stay reproducible; there is no ambient
// global randomness anywhere in CellMesh.
package clock
