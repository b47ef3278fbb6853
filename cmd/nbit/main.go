// Command nbit converts fixed-width signed integers and oscillator timings.
//
//	nbit convert -bits 16 -from decimal -- -1,234
//	nbit ops -bits 8 100 -3
//	nbit clock -from frequency 2.5MHz
//	nbit page -base https://example.com/pages home
package main

import (
	"fmt"
	"io"
	"os"
)

const usage = `usage: nbit <command> [flags] args

commands:
  convert  convert a value between binary, decimal and hex
  ops      print the ALU operation table for two values
  clock    convert between a frequency and its cycle times
  page     fetch a page fragment
`

type command func(args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"convert": runConvert,
	"ops":     runOps,
	"clock":   runClock,
	"page":    runPage,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, found := commands[args[0]]
	if !found {
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	return cmd(args[1:], stdout, stderr)
}
