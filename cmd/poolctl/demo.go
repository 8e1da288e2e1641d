package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/poolkit/poolkit/pool"
	"github.com/spf13/cobra"
)

var (
	demoBlockSize  int
	demoBlockCount int
	demoOffHeap    bool
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoBlockSize, "block-size", 32, "Bytes per block")
	cmd.Flags().IntVar(&demoBlockCount, "blocks", 4, "Number of blocks in the pool")
	cmd.Flags().BoolVar(&demoOffHeap, "off-heap", false, "Back the pool with an anonymous mmap")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk the canonical pool scenario step by step",
		Long: `The demo command drains a pool to exhaustion, demonstrates the
failed allocation, frees a block, and shows first-fit reuse and double-free
rejection.

Example:
  poolctl demo
  poolctl demo --block-size 64 --blocks 16
  poolctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

// demoReport is the JSON shape of a demo run.
type demoReport struct {
	BlockSize     int        `json:"blockSize"`
	BlockCount    int        `json:"blockCount"`
	FreeAfterInit int        `json:"freeAfterInit"`
	Exhausted     bool       `json:"exhaustedAfterDrain"`
	ReusedFirst   bool       `json:"firstFitReusedFreedBlock"`
	DoubleFreeHit bool       `json:"doubleFreeRejected"`
	Stats         pool.Stats `json:"stats"`
}

func runDemo(w io.Writer) error {
	if demoBlockCount < 2 {
		return fmt.Errorf("demo needs at least 2 blocks, got %d", demoBlockCount)
	}
	printVerbose("Creating pool: %d blocks x %d bytes (off-heap: %v)\n",
		demoBlockCount, demoBlockSize, demoOffHeap)

	var (
		p   *pool.Pool
		err error
	)
	if demoOffHeap {
		p, err = pool.NewOffHeap(demoBlockSize, demoBlockCount)
	} else {
		p, err = pool.New(demoBlockSize, demoBlockCount)
	}
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer p.Close()

	report := demoReport{
		BlockSize:     demoBlockSize,
		BlockCount:    demoBlockCount,
		FreeAfterInit: p.FreeCount(),
	}
	printInfo("pool ready: %d/%d blocks free\n", p.FreeCount(), p.Cap())

	// Drain the pool.
	refs := make([]pool.Ref, 0, p.Cap())
	for {
		ref, buf, allocErr := p.Alloc()
		if allocErr != nil {
			if !errors.Is(allocErr, pool.ErrExhausted) {
				return allocErr
			}
			report.Exhausted = true
			printInfo("pool exhausted after %d allocations\n", len(refs))
			break
		}
		// Stamp the block so the data survives until reuse.
		for i := range buf {
			buf[i] = byte(ref)
		}
		refs = append(refs, ref)
		printVerbose("allocated block %d (%d free)\n", ref, p.FreeCount())
	}

	// Free the first block and show first-fit reuse.
	if err := p.Free(refs[0]); err != nil {
		return err
	}
	printInfo("freed block %d (%d free)\n", refs[0], p.FreeCount())

	ref, _, err := p.Alloc()
	if err != nil {
		return err
	}
	report.ReusedFirst = ref == refs[0]
	printInfo("next allocation returned block %d (first-fit reuse: %v)\n",
		ref, report.ReusedFirst)

	// Double free must be rejected without changing anything.
	if err := p.Free(refs[1]); err != nil {
		return err
	}
	err = p.Free(refs[1])
	report.DoubleFreeHit = errors.Is(err, pool.ErrNotAllocated)
	printInfo("double free rejected: %v (%d free)\n", report.DoubleFreeHit, p.FreeCount())

	report.Stats = p.Stats()
	if jsonOut {
		return printJSON(report)
	}

	s := report.Stats
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  allocs: %d (%d failed)\n", s.AllocCalls, s.AllocFailures)
	fmt.Fprintf(w, "  frees:  %d (%d rejected)\n", s.FreeCalls, s.FreeFailures)
	fmt.Fprintf(w, "  peak in use: %d of %d\n", s.HighWater, report.BlockCount)
	return nil
}
