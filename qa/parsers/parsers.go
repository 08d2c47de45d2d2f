package parsers

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/localgroup-vla/qaplotter/qa/shared"
)

type Options struct {
	// MaxHeaderLines bounds the metadata lines scanned before the sentinel.
	MaxHeaderLines int
	Logger         *slog.Logger
}

const DefaultMaxHeaderLines = 50

func (o Options) withDefaults() Options {
	if o.MaxHeaderLines <= 0 {
		o.MaxHeaderLines = DefaultMaxHeaderLines
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type ParserFactory func(opts Options) IParser

type WriterFactory func() IWriter

var (
	registry       = make(map[string]ParserFactory)
	writerRegistry = make(map[string]WriterFactory)
)

// IParser reads one export. A *shared.BodyError means the metadata was read
// but the rows were not; the returned metadata is still valid.
type IParser interface {
	Parse(data []byte) (*shared.RawTable, shared.Metadata, error)
	ParseReader(r io.Reader) (*shared.RawTable, shared.Metadata, error)
}

type IWriter interface {
	Write(w io.Writer, t *shared.RawTable, md shared.Metadata) error
}

func RegisterParser(ext string, parser ParserFactory) {
	registry[ext] = parser
}

func RegisterWriter(ext string, writer WriterFactory) {
	writerRegistry[ext] = writer
}

// GetParser picks the parser registered for the extension of name.
func GetParser(name string, opts Options) (IParser, error) {
	ext := strings.ToLower(path.Ext(name))
	parser, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("parser for %q not found", ext)
	}
	return parser(opts.withDefaults()), nil
}

func GetWriter(name string) (IWriter, error) {
	ext := strings.ToLower(path.Ext(name))
	writer, ok := writerRegistry[ext]
	if !ok {
		return nil, fmt.Errorf("writer for %q not found", ext)
	}
	return writer(), nil
}
