// Copyright 2013 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/zackw/active-geolocator/location"
	"github.com/zackw/active-geolocator/registry"
)

// readRegions parses one region per input line: name, then an even
// number of lon,lat coordinate pairs tracing its outline, e.g.
// "US,-125,24,-66,24,-66,49,-125,49".
func readRegions(path string) ([]location.RegionSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var out []location.RegionSpec
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 7 || (len(rec)-1)%2 != 0 {
			return nil, fmt.Errorf("region row %v needs a name followed by >=3 lon,lat pairs", rec)
		}
		name := rec[0]
		coords := rec[1:]
		ring := make(orb.Ring, len(coords)/2)
		for i := range ring {
			lon, err := strconv.ParseFloat(coords[2*i], 64)
			if err != nil {
				return nil, err
			}
			lat, err := strconv.ParseFloat(coords[2*i+1], 64)
			if err != nil {
				return nil, err
			}
			ring[i] = orb.Point{lon, lat}
		}
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		out = append(out, location.RegionSpec{Name: name, Polygon: ring})
	}
	return out, nil
}

func newCarveRegionsCmd() *cobra.Command {
	var mapPath, regionsPath, outDir string
	var fuzzDeg float64
	cmd := &cobra.Command{
		Use:   "carve-regions",
		Short: "carve one Location per named region polygon out of a baseline map",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := os.Open(mapPath)
			if err != nil {
				return err
			}
			defer mf.Close()

			baseline, err := location.NewMapFromFile(mf, mapPath)
			if err != nil {
				return err
			}

			regions, err := readRegions(regionsPath)
			if err != nil {
				return err
			}

			carved, err := location.CarveRegions(baseline, regions, fuzzDeg)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			reg := registry.New()
			for _, r := range regions {
				loc := carved[r.Name]
				outPath := filepath.Join(outDir, r.Name+".loc")
				of, err := os.Create(outPath)
				if err != nil {
					return err
				}
				err = loc.Save(of)
				of.Close()
				if err != nil {
					return err
				}
				reg.Put(registry.Entry{Name: r.Name, Path: outPath, Kind: registry.KindRegion})
				fmt.Printf("carved %s -> %s\n", r.Name, outPath)
			}
			fmt.Printf("registered %d regions\n", reg.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&mapPath, "map", "", "baseline map file (required)")
	cmd.Flags().StringVar(&regionsPath, "regions", "", "CSV file of name,lon,lat,... rows (required)")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for carved Location files")
	cmd.Flags().Float64Var(&fuzzDeg, "fuzz-deg", 0, "degrees to buffer each region's outline by before carving")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("regions")
	return cmd
}
