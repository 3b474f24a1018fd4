// Package bath describes environments coupled to an open quantum system.
//
// An environment is represented by its correlation function, approximated as
// an ordered sum of decaying exponentials (Exponent). The concrete bath
// constructors (Drude-Lorentz, Padé, underdamped, fermionic) compute the
// exponent set for a named spectral density from physical parameters. The
// solver package consumes baths as configuration; exponent order is stable
// and defines the index correspondence used by the hierarchy bookkeeping.
package bath
