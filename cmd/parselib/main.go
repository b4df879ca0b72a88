// Command parselib demonstrates the core parser and streaming driver
// against a handful of built-in example grammars, reading a file (or
// stdin) either whole or split into fixed-size chunks to exercise the
// streaming path.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/alecthomas/units"
	"github.com/pelletier/go-toml"

	"github.com/ka-fuachie/parse-lib"
	"github.com/ka-fuachie/parse-lib/stream"
)

// byteSize is a kong-compatible flag type accepting values like "64KiB",
// parsed via alecthomas/units so --max-buffer reads the same way a
// kingpin-era Bytes() flag would.
type byteSize int64

func (b *byteSize) UnmarshalText(text []byte) error {
	n, err := units.ParseStrictBytes(string(text))
	if err != nil {
		return fmt.Errorf("max-buffer: %w", err)
	}
	*b = byteSize(n)
	return nil
}

var grammars = map[string]func() parse.Parser{
	"greeting": func() parse.Parser {
		return parse.SequenceOf(parse.Literal("Hello"), parse.Literal(", "), parse.Literal("world"), parse.Literal("!"))
	},
	"digits": func() parse.Parser {
		return parse.OneOrMore(parse.CharFrom(parse.Span('0', '9')))
	},
	"array": func() parse.Parser {
		var array parse.Parser
		value := parse.OneOf(parse.Lazy(func() parse.Parser { return array }), parse.CharFrom(parse.Span('0', '9')))
		array = parse.Lazy(func() parse.Parser {
			return parse.SequenceOf(parse.Literal("["), parse.Optional(value), parse.Literal("]"))
		})
		return array
	},
}

var cli struct {
	Version kong.VersionFlag

	Grammar   string   `help:"Built-in grammar to run: greeting, digits or array." default:"greeting" enum:"greeting,digits,array"`
	File      string   `help:"Input file to parse; reads stdin if omitted." arg:"" optional:""`
	ChunkSize int      `help:"Split input into chunks of this many bytes to exercise streaming; 0 parses whole." default:"0"`
	MaxBuffer byteSize `help:"Reject input once the accumulated buffer exceeds this size, e.g. 64KiB." default:"1MiB"`
	Trace     bool     `help:"Log every Feed/Finish transition, and every combinator transform outside Lazy bodies, to stderr."`
	Describe  bool     `help:"Print the grammar's structure and exit without parsing."`
	Config    string   `help:"Optional TOML config file overriding grammar and chunk-size." optional:""`
}

func loadConfig(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g, ok := tree.Get("grammar").(string); ok {
		cli.Grammar = g
	}
	if c, ok := tree.Get("chunk_size").(int64); ok {
		cli.ChunkSize = int(c)
	}
	return nil
}

func readInput() (string, error) {
	var r io.Reader = os.Stdin
	if cli.File != "" {
		f, err := os.Open(cli.File)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	return string(data), err
}

func chunksOf(s string, size int) []string {
	if size <= 0 {
		return []string{s}
	}
	var chunks []string
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A command-line tool for parse-lib.`),
		kong.Vars{"version": "dev"},
	)

	if cli.Config != "" {
		kctx.FatalIfErrorf(loadConfig(cli.Config))
	}

	build, ok := grammars[cli.Grammar]
	kctx.FatalIfErrorf(func() error {
		if !ok {
			return fmt.Errorf("unknown grammar %q", cli.Grammar)
		}
		return nil
	}())

	grammar := build()
	if cli.Describe {
		fmt.Println(parse.Describe(grammar))
		return
	}

	input, err := readInput()
	kctx.FatalIfErrorf(err)

	if int64(len(input)) > int64(cli.MaxBuffer) {
		kctx.FatalIfErrorf(fmt.Errorf("input of %d bytes exceeds max-buffer of %d bytes", len(input), cli.MaxBuffer))
	}

	var opts []stream.Option
	if cli.Trace {
		grammar = parse.Trace(os.Stderr, grammar)
		opts = append(opts, stream.WithTrace(func(chunk string, s *parse.State) {
			fmt.Fprintf(os.Stderr, "chunk=%q -> %s index=%d\n", chunk, s.Status, s.Index)
		}))
	}

	states := stream.ParseChunks(grammar, chunksOf(input, cli.ChunkSize), opts...)
	final := states[len(states)-1]
	repr.Println(final)

	if final.Status == parse.Error {
		os.Exit(1)
	}
}
