// Command embive loads a RISC-V ELF binary, transpiles it to Embive form,
// and either runs it to completion or serves it to a GDB client over TCP.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/embive/embive-sub000/config"
	"github.com/embive/embive-sub000/debugger"
	"github.com/embive/embive-sub000/host"
	"github.com/embive/embive-sub000/interpreter"
	"github.com/embive/embive-sub000/memory"
	"github.com/embive/embive-sub000/transpiler"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		gdbMode     = flag.Bool("gdb", false, "Serve the program to a GDB client over TCP")
		gdbAddr     = flag.String("gdb-addr", "localhost:9001", "Address to listen on in -gdb mode")
		instrLimit  = flag.Uint64("max-instructions", 0, "Instruction budget per Run call (0 = unlimited)")
		verbose     = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("embive %s (%s)\n", Version, Commit)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <binary.elf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *instrLimit != 0 {
		cfg.Interpreter.InstructionLimit = uint32(*instrLimit)
	}

	elfPath := flag.Arg(0)
	elfBytes, err := os.ReadFile(elfPath) // #nosec G304 -- user-specified binary path
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ELF: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Transpiling %s...\n", elfPath)
	}

	code := make([]byte, cfg.Interpreter.CodeSize)
	result, err := transpiler.Transpile(elfBytes, code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error transpiling ELF: %v\n", err)
		os.Exit(1)
	}

	ram := make([]byte, cfg.Interpreter.RAMSize)
	mem := memory.NewSliceMemory(result.Code, ram)

	interpCfg := interpreter.Config{InstructionLimit: cfg.Interpreter.InstructionLimit}
	interp := interpreter.New(mem, interpCfg)
	if cfg.Trace.Enabled {
		interp.Trace = interpreter.NewTrace(cfg.Trace.MaxEntries)
	}

	handlers := host.NewHandlers()

	if *gdbMode {
		if err := runGDB(interp, handlers, *gdbAddr); err != nil {
			fmt.Fprintf(os.Stderr, "GDB session error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(interp, handlers, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error at PC=0x%08x: %v\n", interp.PC, err)
		os.Exit(1)
	}
	if handlers.Exited != nil {
		os.Exit(int(handlers.Exited.Code))
	}
}

// run drives the interpreter to completion, servicing ECALL and WFI
// inline, the way a hosted frontend would.
func run(interp *interpreter.Interpreter, handlers *host.Handlers, verbose bool) error {
	for {
		state, err := interp.Run()
		if err != nil {
			return err
		}

		switch state {
		case interpreter.Halted:
			if verbose {
				fmt.Println("Halted.")
			}
			return nil
		case interpreter.Called:
			if err := interp.Syscall(handlers.Handle); err != nil {
				return err
			}
			if handlers.Exited != nil {
				return nil
			}
		case interpreter.Waiting:
			if err := interp.Interrupt(); err != nil {
				return err
			}
		case interpreter.Running:
			// Run only returns Running when the instruction budget was
			// exhausted; a fresh call just continues from where it left
			// off.
		}
	}
}

// runGDB listens on addr, accepts a single GDB client, and serves the
// program through a debugger.Session/GDBStub pair.
func runGDB(interp *interpreter.Interpreter, handlers *host.Handlers, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()

	fmt.Printf("Waiting for GDB client on %s...\n", addr)
	conn, err := listener.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Printf("Connected: %s\n", conn.RemoteAddr())

	session := debugger.NewSession(interp, handlers.Handle)
	stub := debugger.NewGDBStub(session, conn)
	return stub.Serve()
}
