package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/arrowio"
	"github.com/hupe1980/tfrec/codec"
	"github.com/hupe1980/tfrec/prommetrics"
	"github.com/hupe1980/tfrec/synth"
)

type writeFlags struct {
	store       storeFlags
	synth       synth.Config
	seed        int64
	in          string
	out         string
	manifest    bool
	codec       string
	discard     bool
	bufferSize  int
	metricsAddr string
	verbose     bool
}

func runWrite(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("write", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f writeFlags
	f.store.register(fs)
	registerSynth(fs, &f.synth, &f.seed)
	fs.StringVar(&f.in, "in", "", "input Arrow IPC stream; synthetic data when empty")
	fs.StringVar(&f.out, "out", "TEST.tfrecords", "output record file name")
	fs.BoolVar(&f.manifest, "manifest", false, "write a manifest next to the output")
	fs.StringVar(&f.codec, "codec", codec.Default.Name(), "manifest codec: go-json or json")
	fs.BoolVar(&f.discard, "discard-on-error", false, "publish nothing when a row fails")
	fs.IntVar(&f.bufferSize, "buffer", tfrec.DefaultBufferSize, "write buffer size in bytes; 0 disables buffering")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while writing")
	fs.BoolVar(&f.verbose, "v", false, "log every row")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, ok := codec.ByName(f.codec)
	if !ok {
		return fmt.Errorf("write: unknown codec %q", f.codec)
	}

	d, err := loadDataset(f)
	if err != nil {
		return err
	}

	store, err := f.store.open(ctx)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := tfrec.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	opts := []tfrec.Option{
		tfrec.WithLogger(logger),
		tfrec.WithMetrics(prommetrics.NewCollector(reg, prommetrics.DefaultNamespace)),
		tfrec.WithCodec(c),
		tfrec.WithBufferSize(f.bufferSize),
	}
	if f.manifest {
		opts = append(opts, tfrec.WithManifest())
	}
	if f.discard {
		opts = append(opts, tfrec.WithDiscardOnError())
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	if f.metricsAddr != "" {
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           prommetrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-done:
			case <-gctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer close(done)
		m, err := tfrec.WriteDataset(gctx, store, f.out, d, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %d records (%d bytes, crc32c %08x) to %s\n", m.Records, m.Bytes, m.CRC32C, f.out)
		return nil
	})

	return g.Wait()
}

func loadDataset(f writeFlags) (*tfrec.Dataset, error) {
	if f.in == "" {
		if err := f.synth.Validate(); err != nil {
			return nil, err
		}
		return synth.Generate(rand.New(rand.NewSource(f.seed)), f.synth), nil
	}

	file, err := os.Open(f.in)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d, err := arrowio.ReadIPC(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.in, err)
	}
	return d, nil
}
