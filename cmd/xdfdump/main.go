// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command xdfdump loads an XDF-shaped definition document and its ROM
// image, then prints a summary of every parameter (the converted value of
// a scalar or flag, the sample count of a function, the shape of a table,
// the applied state of each patch entry) — a read-only smoke test of the
// whole model, mirroring cmd/retro's
// flag-parse-then-run-to-completion shape.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tuners/xdfcore/xdf"
	"github.com/tuners/xdfcore/xdfxml"
)

func main() {
	defFile := flag.String("def", "", "path to the XDF-shaped definition document")
	romFile := flag.String("rom", "", "path to the ROM binary image")
	tolerateCycles := flag.Bool("tolerate-cycles", false, "open the document even if a Math/Axis cycle is present")
	strictCell := flag.Bool("strict-cell", false, "NaN-fill CELL(i;false) on a single-equation host instead of zero-filling")
	debug := flag.Bool("debug", false, "print full error causes with %+v")
	flag.Parse()

	if *defFile == "" || *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	var opts []xdf.Option
	if *tolerateCycles {
		opts = append(opts, xdf.WithTolerated(xdf.KindMathCycle, xdf.KindAxisCycle))
	}
	opts = append(opts, xdf.StrictCell(*strictCell))

	doc, err := xdfxml.Load(*defFile, *romFile, opts...)
	if err != nil {
		fatal(err, *debug)
	}

	fmt.Printf("%s — %s\n", doc.Title, doc.Description)
	for _, p := range doc.Parameters {
		dumpParameter(doc, p)
	}
}

func dumpParameter(doc *xdf.Document, p xdf.Parameter) {
	meta := p.Meta()
	fmt.Printf("[%s] %s %q\n", meta.UniqueID, p.Kind(), meta.Title)

	switch t := p.(type) {
	case *xdf.Scalar:
		v, err := t.Value(doc.Engine())
		printValueOrError(v, err)
	case *xdf.Flag:
		v, err := t.Value(doc.Engine())
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			return
		}
		fmt.Printf("  %v\n", v)
	case *xdf.Function:
		y, err := t.Interpolated(doc.Engine())
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			return
		}
		fmt.Printf("  %d samples\n", len(y))
	case *xdf.Table:
		z, err := t.Z(doc.Engine())
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			return
		}
		fmt.Printf("  %d x %d\n", len(z), len(z[0]))
	case *xdf.Patch:
		for _, e := range t.Entries {
			fmt.Printf("  0x%X: applied=%v\n", e.Address, e.Applied(doc.Engine()))
		}
	}
}

func printValueOrError(v float64, err error) {
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return
	}
	fmt.Printf("  %v\n", v)
}

func fatal(err error, debug bool) {
	if debug {
		log.Fatalf("%+v", err)
	}
	log.Fatal(err)
}
