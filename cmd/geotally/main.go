package main

import (
	"fmt"
	"os"
)

const usage = `geotally - tally tweets per author and greater capital city

Usage:
  geotally run   -input tweets.json -catalog sal.json [-workers N] [-top N]
  geotally runs  [-store path]
  geotally show  -run-id ID [-store path] [-top N] [-workers]

Run "geotally <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "run":
		runCmd(args)
	case "runs":
		listRunsCmd(args)
	case "show":
		showRunCmd(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}
