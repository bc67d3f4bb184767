package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/hupe1980/tfrec/arrowio"
	"github.com/hupe1980/tfrec/synth"
)

func registerSynth(fs *flag.FlagSet, cfg *synth.Config, seed *int64) {
	*cfg = synth.DefaultConfig
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of rows")
	fs.IntVar(&cfg.GeneWidth, "genes", cfg.GeneWidth, "gene-expression values per row")
	fs.IntVar(&cfg.TokenWidth, "tokens", cfg.TokenWidth, "SMILES atom tokens per row")
	fs.IntVar(&cfg.Vocab, "vocab", cfg.Vocab, "number of distinct token ids")
	fs.Int64Var(seed, "seed", 1, "random seed")
}

func runGen(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg  synth.Config
		seed int64
		out  string
	)
	registerSynth(fs, &cfg, &seed)
	fs.StringVar(&out, "out", "", "output Arrow IPC stream file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if out == "" {
		return errors.New("gen: -out is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	d := synth.Generate(rand.New(rand.NewSource(seed)), cfg)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := arrowio.WriteIPC(f, d); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d rows (%d genes, %d tokens) to %s\n", d.Len(), d.GeneWidth(), d.TokenWidth(), out)
	return nil
}
