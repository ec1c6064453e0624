// Minimal entry point that delegates CLI handling to the Cobra root
// command in root.go.
package main

func main() {
	Execute()
}
