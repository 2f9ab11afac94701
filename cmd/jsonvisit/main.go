package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	jsonvisit "github.com/reoring/jsonvisit"
)

func main() {
	fs := flag.NewFlagSet("jsonvisit", flag.ExitOnError)
	var format string
	var maxDepth int
	var dup string
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: by file extension, json otherwise)")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum container nesting depth (0 = unlimited)")
	fs.StringVar(&dup, "dup", "ignore", "duplicate key policy: ignore, warn or error")
	fs.Usage = usage(fs)
	_ = fs.Parse(os.Args[1:])

	path := fs.Arg(0)
	data, err := readInput(path)
	if err != nil {
		fatal(err)
	}

	src, err := sourceFor(format, path, data)
	if err != nil {
		fatal(err)
	}

	opt := jsonvisit.DecodeOpt{MaxDepth: maxDepth}
	switch dup {
	case "ignore":
	case "warn":
		opt.OnDuplicateKey = jsonvisit.Warn
		opt.IssueSink = func(is jsonvisit.Issue) {
			fmt.Fprintf(os.Stderr, "warning: %s at %s: %s\n", is.Code, is.Path, is.Message)
		}
	case "error":
		opt.OnDuplicateKey = jsonvisit.Error
	default:
		fatal(fmt.Errorf("unknown -dup policy %q", dup))
	}

	node, err := jsonvisit.DecodeDocument(src, opt)
	if err != nil {
		fatal(err)
	}

	ix := jsonvisit.NewIndex()
	if _, err := jsonvisit.Accept[struct{}](node, ix); err != nil {
		fatal(err)
	}
	for _, ptr := range ix.Pointers() {
		kind, _ := ix.KindAt(ptr)
		fmt.Printf("%s\t%s\n", ptr, kind)
	}
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "jsonvisit CLI\n\nUsage:\n  jsonvisit [flags] [file]\n\nReads a JSON or YAML document (stdin when no file is given) and prints\nthe JSON Pointer of every value together with its kind.")
		fs.PrintDefaults()
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func sourceFor(format, path string, data []byte) (jsonvisit.Source, error) {
	if format == "" {
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			format = "yaml"
		} else {
			format = "json"
		}
	}
	switch format {
	case "json":
		return jsonvisit.JSONBytes(data), nil
	case "yaml":
		return jsonvisit.YAMLBytes(data), nil
	default:
		return nil, fmt.Errorf("unknown -format %q", format)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jsonvisit:", err)
	os.Exit(1)
}
