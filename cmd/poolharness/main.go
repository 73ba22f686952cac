// Command poolharness drives the named allocator/list scenarios used
// to validate pkg/poolheap against the behaviors it is expected to
// uphold, the way the original test driver this package replaces did.
package main

import "github.com/flier/poolheap/cmd/poolharness/cmd"

func main() {
	cmd.Execute()
}
