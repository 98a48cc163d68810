// Package main is the isadetect CLI entrypoint: the external wrapper around
// the detection core (spec.md §6's "CLI surface"), wiring corpus loading,
// detection, JSON/table output, and optional plotting around a cobra
// command.
package main

func main() {
	Execute()
}
