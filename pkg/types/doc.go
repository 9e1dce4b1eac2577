// Package types defines the Toy interface, toy kinds, the network
// configuration, and the standard error values shared by the toybox
// factory and singleton packages.
package types
