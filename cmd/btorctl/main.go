// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

// Command btorctl is a small inspectable front-end over btorcore, for
// manual and demo use — it is not part of the library's contract
// (SPEC_FULL.md's AMBIENT STACK). Modelled on
// oisee-z80-optimizer/cmd/z80opt/main.go: one root cobra command, one
// subcommand per operation, each RunE wrapping a handful of library
// calls and returning its error rather than calling os.Exit directly.
package main

import (
	"fmt"
	"os"

	"github.com/exprdag/btorcore"
	"github.com/exprdag/btorcore/internal/bv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "btorctl",
		Short: "Inspect the btorcore bit-vector/array expression engine",
	}

	var width uint32
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a handful of canned terms and dump the DAG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(width)
		},
	}
	demoCmd.Flags().Uint32Var(&width, "width", 8, "bit-vector width for the demo terms")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Build the demo terms and print arena/unique-table stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(width)
		},
	}
	statsCmd.Flags().Uint32Var(&width, "width", 8, "bit-vector width for the demo terms")

	rootCmd.AddCommand(demoCmd, statsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildDemo constructs x & 0x0F, a write/read round-trip on a fresh
// array, and a signed division, exercising a representative slice of
// the constructor surface without requiring a rewriter/beta-reducer.
func buildDemo(c *btorcore.Context, width uint32) (btorcore.Handle, error) {
	bvSort := c.BV(width)
	x := c.BvVar(width, "x")
	mask := c.BvConst(bv.FromUint64(0x0F, width))
	and := c.And(x, mask)

	arr := c.ArrayVar(bvSort, bvSort, "a")
	idx := c.BvVar(width, "i")
	val := c.BvVar(width, "v")
	written := c.Write(arr, idx, val)
	read := c.Read(written, idx)

	div := c.Sdiv(x, mask)
	andNonZero := c.Redor(and)
	eq := c.BvEq(read, val)
	divOK := c.Ulte(div, mask)
	combined := c.And(andNonZero, eq)
	result := c.And(combined, divOK)

	c.Release(x)
	c.Release(mask)
	c.Release(and)
	c.Release(arr)
	c.Release(idx)
	c.Release(val)
	c.Release(written)
	c.Release(read)
	c.Release(div)
	c.Release(andNonZero)
	c.Release(eq)
	c.Release(divOK)
	c.Release(combined)

	return result, nil
}

func runDemo(width uint32) error {
	c := btorcore.NewContext()
	defer btorcore.DeleteContext(c)

	root, err := buildDemo(c, width)
	if err != nil {
		return err
	}
	fmt.Print(c.String(root))
	return nil
}

func runStats(width uint32) error {
	c := btorcore.NewContext()
	defer btorcore.DeleteContext(c)

	if _, err := buildDemo(c, width); err != nil {
		return err
	}
	s := c.Stats()
	fmt.Printf("live nodes:      %d\n", s.LiveNodes)
	fmt.Printf("total allocated: %d\n", s.TotalAllocs)
	fmt.Printf("unique entries:  %d\n", s.UniqueEntries)
	fmt.Printf("next id:         %d\n", s.NextID)
	return nil
}
