// Copyright 2013 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// build-map would turn a raster or vector landmass/population dataset
// into the dense baseline NetCDF file that NewMapFromFile reads.
// Producing that baseline from raw geodata is explicitly out of scope
// here: the command is kept so the cmd/geoloc surface matches what
// carve-regions and geolocate's --map flag expect to consume, and so
// it fails with a clear message instead of "unknown command" when
// someone reaches for it.
func newBuildMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-map",
		Short: "(not implemented) construct a baseline map file from source geodata",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("build-map is not implemented: baseline map files are produced out of band and consumed via --map")
		},
	}
	return cmd
}
