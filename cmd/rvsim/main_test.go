package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesImageToExit(t *testing.T) {
	// addi x10, x0, 5 ; addi x17, x0, 93 (exit) ; ecall
	image := []byte{
		0x13, 0x05, 0x50, 0x00,
		0x93, 0x08, 0xd0, 0x05,
		0x73, 0x00, 0x00, 0x00,
	}
	cfg := config{memSize: 0x1000, maxSteps: 10}
	code, err := run(cfg, image, os.Stderr)
	require.NoError(t, err)
	assert.EqualValues(t, 5, code)
}

func TestRunReportsTrapAsError(t *testing.T) {
	image := []byte{0xff, 0xff, 0xff, 0xff}
	cfg := config{memSize: 0x1000, maxSteps: 10}
	_, err := run(cfg, image, os.Stderr)
	assert.Error(t, err)
}

func TestRunRejectsImageLargerThanMemory(t *testing.T) {
	cfg := config{memSize: 2, maxSteps: 10}
	_, err := run(cfg, []byte{1, 2, 3, 4}, os.Stderr)
	assert.Error(t, err)
}
