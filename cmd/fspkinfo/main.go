// Command fspkinfo is a read-only inspector for FSPK pack files: it
// prints the header, section directory, and a per-state summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fspk/fspk/pack"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <pack-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("fspkinfo: %v", err)
	}

	pv, err := pack.Parse(data)
	if err != nil {
		log.Fatalf("fspkinfo: parse failed: %v", err)
	}

	fmt.Print(pv.Describe())
	printStates(pv)
}

func printStates(pv *pack.PackView) {
	states := pv.States()
	fmt.Printf("\n%d states:\n", states.Len())

	for i := 0; i < states.Len(); i++ {
		rec, ok := states.At(i)
		if !ok {
			continue
		}

		tags := pv.Tags(i)
		fmt.Printf("  [%d] total=%-4d startup=%d active=%d recovery=%d damage=%d hit=%d hurt=%d push=%d tags=%v\n",
			i, rec.Total, rec.Startup, rec.Active, rec.Recovery, rec.Damage,
			rec.HitWindowsLen, rec.HurtWindowsLen, rec.PushWindowsLen, tags)
	}
}
