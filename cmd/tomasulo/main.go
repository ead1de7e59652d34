// Command tomasulo is the host shell: it loads an assembly program, then
// either dumps one JSON snapshot or launches the interactive TUI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"tomasulo/asm"
	"tomasulo/engine"
	"tomasulo/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	programPath := flag.String("program", "", "path to an assembly program")
	dumpJSON := flag.Bool("json", false, "print one JSON snapshot after running the program to completion, instead of launching the TUI")
	maxTicks := flag.Uint("max-ticks", 10000, "tick budget for -json mode")
	flag.Parse()

	if *programPath == "" {
		fmt.Fprintln(os.Stderr, "tomasulo: -program is required")
		return 1
	}

	text, err := os.ReadFile(*programPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tomasulo:", err)
		return 1
	}

	insts, err := asm.Parse(string(text))
	if err != nil {
		fmt.Fprintln(os.Stderr, "tomasulo:", err)
		return 1
	}

	sim := engine.New(insts)

	if *dumpJSON {
		sim.RunN(uint32(*maxTicks))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sim.Snapshot()); err != nil {
			fmt.Fprintln(os.Stderr, "tomasulo:", err)
			return 1
		}
		return 0
	}

	if err := tui.Run(sim); err != nil {
		fmt.Fprintln(os.Stderr, "tomasulo:", err)
		return 1
	}
	return 0
}
