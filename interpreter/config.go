package interpreter

// Config carries the tunables the interpreter core itself needs. Anything
// ambient (trace settings, TOML file layout) lives in the top-level config
// package and is translated down to this struct at startup.
type Config struct {
	// InstructionLimit caps the number of steps a single Run call
	// executes before yielding with Running. Zero means unlimited.
	InstructionLimit uint32
}
