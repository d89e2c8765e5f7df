// Package pipeline sequences a provisioning run.
//
// The Controller walks the phases in a fixed order:
//
//	init → privilege-check → system-update → baseline-install → audit →
//	install → verify → configure → done
//
// Any phase may end the run in failed. Install is the only phase whose
// failure does not stop the run: its result is recorded and the verify
// phase decides whether the packages are really there. Audit and verify
// are the integrity gates; install is never attempted after a failed
// audit and configuration is never written after a failed verification.
//
// Components are injected as small interfaces so each combination of
// outcomes can be exercised with fakes.
package pipeline
