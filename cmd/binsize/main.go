// binsize encodes a corpus of order records with binser and with general
// purpose formats, verifies every round trip and prints the encoded sizes.
//
//	binsize --count 1000
//	binsize --corpus orders.yaml --codecs binary,cbor --json
//	binsize --count 100 --pebble /tmp/orders   # also persist through store
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/binser"
	"github.com/unkn0wn-root/binser/codec"
	zaplog "github.com/unkn0wn-root/binser/log/zap"
	"github.com/unkn0wn-root/binser/provider/pebble"
	"github.com/unkn0wn-root/binser/store"
)

type config struct {
	corpus  string
	count   int
	seed    uint64
	codecs  string
	json    bool
	verbose bool
	pebble  string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := pflag.NewFlagSet("binsize", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.corpus, "corpus", "", "YAML file with an `orders:` list (default: generated)")
	fs.IntVarP(&cfg.count, "count", "n", 1000, "number of generated orders")
	fs.Uint64Var(&cfg.seed, "seed", 1, "seed for the generated corpus")
	fs.StringVar(&cfg.codecs, "codecs", "binary,cbor,msgpack,json", "comma-separated codecs to compare")
	fs.BoolVar(&cfg.json, "json", false, "print results as JSON")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")
	fs.StringVar(&cfg.pebble, "pebble", "", "also write the corpus through a pebble-backed store in this directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	log := newLogger(stderr, cfg.verbose)
	defer func() { _ = log.Sync() }()

	names, err := parseCodecs(cfg.codecs)
	if err != nil {
		return err
	}
	orders, err := corpus(cfg)
	if err != nil {
		return err
	}
	log.Debug("corpus ready", zap.Int("orders", len(orders)), zap.String("source", sourceName(cfg)))

	rows := make([]row, 0, len(names))
	for _, name := range names {
		c, err := codecs[name]()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r, err := measure(name, c, orders)
		if err != nil {
			return err
		}
		log.Debug("measured", zap.String("codec", name), zap.Int("bytes", r.Bytes))
		rows = append(rows, r)
	}
	relate(rows)

	if cfg.pebble != "" {
		if err := persist(context.Background(), cfg.pebble, orders, zaplog.New(log)); err != nil {
			return err
		}
		log.Info("corpus persisted", zap.String("dir", cfg.pebble), zap.Int("orders", len(orders)))
	}

	if cfg.json {
		return writeJSON(stdout, rows)
	}
	return writeTable(stdout, rows)
}

func corpus(cfg config) ([]Order, error) {
	if cfg.corpus != "" {
		return loadCorpus(cfg.corpus)
	}
	if cfg.count <= 0 {
		return nil, fmt.Errorf("--count must be positive, got %d", cfg.count)
	}
	return generate(cfg.count, cfg.seed), nil
}

func sourceName(cfg config) string {
	if cfg.corpus != "" {
		return cfg.corpus
	}
	return "generated"
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// persist writes every order through a store on pebble and reads it back.
func persist(ctx context.Context, dir string, orders []Order, log binser.Logger) error {
	p, err := pebble.New(pebble.Config{Dir: dir})
	if err != nil {
		return fmt.Errorf("open pebble: %w", err)
	}
	s, err := store.New(store.Options[Order]{
		Namespace: "binsize:order",
		Provider:  p,
		Codec:     codec.Record[Order](),
		Logger:    log,
	})
	if err != nil {
		_ = p.Close(ctx)
		return err
	}
	defer s.Close(ctx)

	for _, o := range orders {
		key := fmt.Sprint(o.ID)
		if err := s.Set(ctx, key, o, -1); err != nil {
			return err
		}
		if _, ok, err := s.Get(ctx, key); err != nil || !ok {
			return fmt.Errorf("order %d not readable after write: ok=%v err=%v", o.ID, ok, err)
		}
	}
	return nil
}
