package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	demoBlockSize = 32
	demoBlockCount = 4
	demoOffHeap = false

	var out bytes.Buffer
	err := runDemo(&out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "allocs: 6 (1 failed)")
	assert.Contains(t, out.String(), "frees:  3 (1 rejected)")
	assert.Contains(t, out.String(), "peak in use: 4 of 4")
}

func TestRunDemo_BadGeometry(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	demoBlockSize = 0
	demoBlockCount = 4

	var out bytes.Buffer
	err := runDemo(&out)
	require.Error(t, err)
}

func TestRunBench_SmallRun(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	benchBlockSize = 16
	benchBlockCount = 8
	benchOps = 100
	benchOffHeap = false

	require.NoError(t, runBench())
}
