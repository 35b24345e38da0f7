package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Ughuuu/gdext/pkg/gdext"
)

func main() {
	libPath := flag.String("lib", "", "path to a host shared library to probe")
	symbol := flag.String("symbol", "get_proc_address", "entry symbol resolving host functions by name")
	flag.Parse()

	log.Printf("gdext compiled against host version: %s", gdext.StaticVersionString())

	if *libPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gdext-probe -lib <path> [-symbol <name>]")
		os.Exit(2)
	}

	token, err := gdext.OpenHostLibrary(*libPath, *symbol)
	if err != nil {
		if errors.Is(err, gdext.ErrNotBuilt) {
			fmt.Printf("host loader unavailable on this platform: %v\n", err)
			return
		}
		log.Fatalf("load host library: %v", err)
	}

	lib, err := gdext.Open(token, gdext.Config{})
	if err != nil {
		log.Fatalf("host negotiation failed:\n%v", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	fmt.Printf("negotiated host version: %s\n", lib.RuntimeVersion().String)
}
