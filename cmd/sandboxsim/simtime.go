package main

import "github.com/sandboxsim/sandboxsim/sandbox"

func sandboxSimTime(hours float64) sandbox.SimTime {
	return sandbox.SimTime(hours)
}
