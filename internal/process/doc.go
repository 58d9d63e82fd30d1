// Package process binds the sampling transforms, weight functions and
// kinematics builders into engine.Process implementations:
//
//   - Leptonic: e⁺e⁻ → Z/γ* → μ⁺μ⁻ at a fixed collision energy
//   - Hadronic: pp → Z/γ* → μ⁺μ⁻ with ŝ from a resonance transform and
//     the parton fractions from a rapidity transform
//
// Configuration is validated once in the constructors; Sample never fails.
package process
