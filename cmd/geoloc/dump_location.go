// Copyright 2013 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zackw/active-geolocator/location"
)

// newDumpLocationCmd is the structural descendant of the teacher's
// gobdump: where gobdump decoded and printed an arbitrary gob value,
// dump-location opens one Location file and prints its grid scalars,
// mass, centroid and (optionally) every nonzero row — the same "show
// me what's actually in this serialized structure" job, aimed at this
// module's own file format instead of encoding/gob.
func newDumpLocationCmd() *cobra.Command {
	var showRows bool
	cmd := &cobra.Command{
		Use:   "dump-location <file>",
		Short: "print the contents of a Location file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			loc, err := location.Load(f)
			if err != nil {
				return err
			}

			fmt.Printf("grid: resolution=%gm fuzz=%gm bounds=[%g,%g]x[%g,%g] %dx%d cells\n",
				loc.Grid.ResolutionM, loc.Grid.FuzzM,
				loc.Grid.West, loc.Grid.East, loc.Grid.South, loc.Grid.North,
				loc.Grid.Nx(), loc.Grid.Ny())

			vacuous, err := loc.Vacuous()
			if err != nil {
				return err
			}
			if vacuous {
				fmt.Println("mass: vacuous (no probability mass)")
				return nil
			}

			lon, lat, err := loc.Centroid()
			if err != nil {
				return err
			}
			fmt.Printf("centroid: (%g, %g)\n", lon, lat)

			if showRows {
				pmf, err := loc.PMF()
				if err != nil {
					return err
				}
				pmf.NonZero(func(i, j int, v float64) {
					fmt.Printf("  [%d,%d] (%g, %g) = %g\n", i, j, loc.Grid.Longitudes[i], loc.Grid.Latitudes[j], v)
				})
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRows, "rows", false, "print every nonzero probability-mass row")
	return cmd
}
