package main

import (
	"fmt"
	"time"

	"github.com/poolkit/poolkit/pool"
	"github.com/spf13/cobra"
)

var (
	benchBlockSize  int
	benchBlockCount int
	benchOps        int
	benchOffHeap    bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchBlockSize, "block-size", 64, "Bytes per block")
	cmd.Flags().IntVar(&benchBlockCount, "blocks", 1024, "Number of blocks in the pool")
	cmd.Flags().IntVar(&benchOps, "ops", 1_000_000, "Alloc/free pairs to run")
	cmd.Flags().BoolVar(&benchOffHeap, "off-heap", false, "Back the pool with an anonymous mmap")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Measure alloc/free throughput",
		Long: `The bench command runs alloc/free pairs against a pool of the
given geometry and reports throughput.

Example:
  poolctl bench
  poolctl bench --blocks 4096 --ops 10000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

type benchReport struct {
	BlockSize  int        `json:"blockSize"`
	BlockCount int        `json:"blockCount"`
	Ops        int        `json:"ops"`
	Elapsed    string     `json:"elapsed"`
	OpsPerSec  float64    `json:"opsPerSec"`
	Stats      pool.Stats `json:"stats"`
}

func runBench() error {
	var (
		p   *pool.Pool
		err error
	)
	if benchOffHeap {
		p, err = pool.NewOffHeap(benchBlockSize, benchBlockCount)
	} else {
		p, err = pool.New(benchBlockSize, benchBlockCount)
	}
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer p.Close()

	printVerbose("benchmarking %d alloc/free pairs on %d x %d bytes\n",
		benchOps, benchBlockCount, benchBlockSize)

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		ref, _, allocErr := p.Alloc()
		if allocErr != nil {
			return allocErr
		}
		if freeErr := p.Free(ref); freeErr != nil {
			return freeErr
		}
	}
	elapsed := time.Since(start)

	report := benchReport{
		BlockSize:  benchBlockSize,
		BlockCount: benchBlockCount,
		Ops:        benchOps,
		Elapsed:    elapsed.String(),
		OpsPerSec:  float64(benchOps) / elapsed.Seconds(),
		Stats:      p.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}
	printInfo("%d alloc/free pairs in %s (%.0f pairs/sec)\n",
		report.Ops, report.Elapsed, report.OpsPerSec)
	return nil
}
