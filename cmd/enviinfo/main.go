// This tool prints the geometry, encoding, band directory and metadata of
// the passed ENVI file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/envi"
)

const missingPathMessage = "You must pass the path of the ENVI data file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	r, err := envi.Open(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	lines, samples := r.Extent()

	fmt.Fprintf(out, "Description: %s\n", r.Description())
	fmt.Fprintf(out, "Extent: %d lines x %d samples\n", lines, samples)
	fmt.Fprintf(out, "Data type: %s\n", r.DataType())
	fmt.Fprintf(out, "Channels: %d\n", r.NumChannels())

	for i, name := range r.ChannelNames() {
		fmt.Fprintf(out, "\t[%d] %s\n", i, name)
	}

	meta := r.Metadata()
	if meta.Len() == 0 {
		fmt.Fprintln(out, "No metadata present")
		return nil
	}

	fmt.Fprintln(out, "Metadata:")

	for i := 0; i < meta.Len(); i++ {
		fmt.Fprintf(out, "\t%s = %s\n", meta.Key(i), meta.Value(i))
	}

	return nil
}
