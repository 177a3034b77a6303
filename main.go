// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/fem"
	"github.com/prklVIP/gofem2/out"
	"github.com/spf13/cobra"
)

var (
	verbose bool   // show messages
	field   string // name of field output
	block   string // element block of field output
	label   int    // node or element label
	ip      int    // integration point
	comp    string // component
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "gofem2",
		Short: "incremental finite element analysis",
	}

	runCmd := &cobra.Command{
		Use:   "run [file.sim|file.yaml]",
		Short: "run all steps of a simulation and save the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "show messages")

	historyCmd := &cobra.Command{
		Use:   "history [file.json|file.gob|file.db]",
		Short: "print the history of one component of a field output",
		Args:  cobra.ExactArgs(1),
		RunE:  printHistory,
	}
	historyCmd.Flags().StringVar(&field, "field", "U", "name of field output; e.g. U, RF, T, S")
	historyCmd.Flags().StringVar(&block, "block", "", "element block of element outputs")
	historyCmd.Flags().IntVar(&label, "label", 1, "node or element label")
	historyCmd.Flags().IntVar(&ip, "ip", 0, "integration point")
	historyCmd.Flags().StringVar(&comp, "comp", "", "component; e.g. x, y, xx. empty means the first one")

	rootCmd.AddCommand(runCmd, historyCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	io.Verbose = verbose
	if verbose {
		io.PfWhite("\nGofem2 -- Incremental Finite Element Analysis\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n\n")
	}
	analysis, err := fem.NewMain(args[0], verbose)
	if err != nil {
		return err
	}
	if err = analysis.Run(); err != nil {
		return chk.Err("Run failed:\n%v", err)
	}
	for _, stp := range analysis.Model.Steps {
		for _, w := range stp.Warnings {
			io.Pfyel("step %q: %s\n", stp.Name, w)
		}
	}
	return nil
}

func printHistory(cmd *cobra.Command, args []string) (err error) {
	fnpath := args[0]
	key := out.Key{Block: block, Name: field}
	var t, v []float64
	ext := strings.ToLower(filepath.Ext(fnpath))
	switch ext {
	case ".db":
		var db *out.DB
		db, err = out.OpenDB(fnpath)
		if err != nil {
			return
		}
		defer db.Close()
		t, v, err = db.History(context.Background(), key, label, ip, comp)
	case ".json", ".gob":
		var recs []*out.FrameRecord
		recs, err = out.Load(fnpath, ext[1:])
		if err != nil {
			return
		}
		t, v, err = out.History(recs, key, label, ip, comp)
	default:
		return chk.Err("extension %q is invalid; options are .json, .gob and .db", ext)
	}
	if err != nil {
		return
	}
	io.Pf("%s\n", out.Table(t, v, "time", key.String()))
	io.Pf("%s\n", out.PlotASCII(v, io.Sf("%v at %d", key, label)))
	return
}
