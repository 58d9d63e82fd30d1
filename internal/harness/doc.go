// Package harness runs end-to-end generator scenarios and checks their
// outcome.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: ee_on_resonance
//	description: "Leptonic run at the Z pole"
//	process: ee            # ee | pp
//	ecm: 91.188
//	events: 100
//	samples: 200000
//	seed: 1
//	window: 2              # optional, default 2
//	pdf: builtin           # pp only, default builtin
//	replicas: 200          # optional independent integrations
//	assertions:
//	  - type: positive_cross_section
//	  - type: event_count
//	    count: 100
//	  - type: momentum_conserved
//	    tolerance: 1e-6
//
// # Assertion Types
//
//   - positive_cross_section: σ > 0
//   - error_below_cross_section: error < σ
//   - max_weight_positive: the rejection envelope is positive
//   - event_count: exactly count events were generated
//   - particle_count: every event has count particles
//   - momentum_conserved: Σ incoming − Σ outgoing within tolerance
//   - incoming_energy: incoming energies equal x·ECM/2 within tolerance
//   - cos_theta_window: every event's cos θ lies in the window
//   - replicas_consistent: at least fraction of replicas lie within
//     sigmas standard errors of the estimate from all other samples
//   - analytic_cross_section: σ within sigmas errors of the exact value
//     (leptonic only)
//
// # Deterministic Testing
//
// A scenario's seed fixes every stream: integration uses stream 0,
// generation stream 1 and replica i stream 2+i. Reruns give identical
// results.
package harness
