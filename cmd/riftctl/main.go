// Command riftctl is a small CLI over the riftconf facade, mirroring
// RobertP-SyndicateLabs-SIC-lang's subcommand-dispatch style
// (cli/main.go) rather than reaching for a third-party flags framework.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/RobertP-SyndicateLabs/riftconf"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "load":
		doLoad(os.Args[2:])
	case "fetch":
		doFetch(os.Args[2:])
	case "print":
		doPrint(os.Args[2:])
	case "check":
		doCheck(os.Args[2:])
	default:
		fmt.Println("unknown command:", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: riftctl <command> [args]")
	fmt.Println("  load   <file>                    parse a source file and print a summary")
	fmt.Println("  fetch  <file> <namespace> <prop>  parse a source file and print one resource")
	fmt.Println("  print  <file>                    parse a source file, echoing its PRINT output")
	fmt.Println("  check  <file>                    parse in restricted mode, report failure state")
}

func doLoad(args []string) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Println("usage: riftctl load <file>")
		os.Exit(1)
	}

	cfg := riftconf.New()
	cfg.PushSource(fs.Arg(0))
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("load failed: %v", err))
		os.Exit(1)
	}
	cfg.Describe(os.Stdout)
}

func doFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 3 {
		fmt.Println("usage: riftctl fetch <file> <namespace> <property>")
		os.Exit(1)
	}

	file, namespace, property := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	cfg := riftconf.New()
	cfg.PushSource(file)
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("load failed: %v", err))
		os.Exit(1)
	}

	if !cfg.Fetch(namespace, property) {
		if ns, prop, ok := cfg.SuggestResource(namespace, property); ok {
			fmt.Fprintln(os.Stderr, color.YellowString("no such resource; did you mean %q %q?", ns, prop))
		} else {
			fmt.Fprintln(os.Stderr, color.RedString("no such resource: %s %s", namespace, property))
		}
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for cfg.Iterate() {
		fmt.Fprintln(w, cfg.Resource())
	}
}

func doPrint(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Println("usage: riftctl print <file>")
		os.Exit(1)
	}

	cfg := riftconf.New()
	cfg.SetDiagOutput(os.Stdout)
	cfg.PushSource(fs.Arg(0))
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("load failed: %v", err))
		os.Exit(1)
	}
}

func doCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Println("usage: riftctl check <file>")
		os.Exit(1)
	}

	cfg := riftconf.New()
	cfg.Restrict()
	cfg.PushSource(fs.Arg(0))
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("load failed: %v", err))
		os.Exit(1)
	}
	cfg.Describe(os.Stdout)
}
