// Command qubed reads a request catalogue in one of the supported
// input conventions and renders it back out as a Qube.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/qubed"
	"github.com/scigolib/qubed/adapters/dssconstraints"
	"github.com/scigolib/qubed/adapters/marslist"
)

func main() {
	format := flag.String("format", "mars", "input convention: mars or dss")
	output := flag.String("output", "ascii", "output format: ascii or json")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: qubed [flags] <file>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("failed to open file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close file: %v", err)
		}
	}()

	var q *qubed.Qube
	switch *format {
	case "mars":
		q, err = marslist.Parse(f)
	case "dss":
		q, err = dssconstraints.Parse(f)
	default:
		log.Fatalf("unknown -format %q (want mars or dss)", *format)
	}
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}

	switch *output {
	case "ascii":
		fmt.Print(q.ToASCII())
	case "json":
		data, err := q.ToJSON()
		if err != nil {
			log.Fatalf("failed to render json: %v", err)
		}
		fmt.Println(string(data))
	default:
		log.Fatalf("unknown -output %q (want ascii or json)", *output)
	}
}
