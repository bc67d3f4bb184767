// Command tfrec packs drug-response rows into a TFRecord file.
//
// Usage:
//
//	tfrec gen     -out data.arrows [-rows 85 -genes 2128 -tokens 155 -seed 1]
//	tfrec write   -out TEST.tfrecords [-in data.arrows] [-store local|s3|minio] ...
//	tfrec inspect -in TEST.tfrecords [-store ...] [-n 3]
//
// write without -in generates the synthetic demo dataset.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: tfrec <command> [flags]

commands:
  gen      generate a synthetic dataset as an Arrow IPC stream
  write    write a dataset as a TFRecord file
  inspect  read back and verify a TFRecord file

run "tfrec <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "tfrec:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "gen":
		return runGen(args, stdout, stderr)
	case "write":
		return runWrite(ctx, args, stdout, stderr)
	case "inspect":
		return runInspect(ctx, args, stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
