// Copyright 2013 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zackw/active-geolocator/calibration"
	"github.com/zackw/active-geolocator/location"
	"github.com/zackw/active-geolocator/ranging"
)

// observationRow is one line of a geolocate input file: a landmark's
// position, its measured RTTs (milliseconds), and the name of the
// calibration curve to range it with.
type observationRow struct {
	lon, lat float64
	rttsMs   []float64
	calKind  string
}

func readObservations(path string) ([]observationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var out []observationRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("observation row needs lon,lat,calibration,rtt...: %v", rec)
		}
		lon, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		lat, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		kind := rec[2]
		rtts := make([]float64, 0, len(rec)-3)
		for _, s := range rec[3:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, err
			}
			rtts = append(rtts, v)
		}
		out = append(out, observationRow{lon: lon, lat: lat, rttsMs: rtts, calKind: kind})
	}
	return out, nil
}

func buildCalibration(kind string) (calibration.Calibration, error) {
	switch kind {
	case "physical":
		return calibration.NewPhysicalLimitsOnly(calibration.Physical), nil
	case "empirical":
		return calibration.NewPhysicalLimitsOnly(calibration.Empirical), nil
	default:
		return nil, fmt.Errorf("unknown built-in calibration kind %q (use calibrate to fit CBG/QuasiOctant/Spotter from data)", kind)
	}
}

func newGeolocateCmd() *cobra.Command {
	var mapPath, obsPath, savePath string
	cmd := &cobra.Command{
		Use:   "geolocate",
		Short: "intersect a baseline map with a set of RTT observations",
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

			rows, err := readObservations(obsPath)
			if err != nil {
				return err
			}

			result := baseline
			for _, row := range rows {
				cal, err := buildCalibration(row.calKind)
				if err != nil {
					return err
				}
				fn := ranging.NewMinMaxSoftSkirt(cal, row.rttsMs, baseline.Grid.FuzzM)
				obs := location.NewObservation(baseline.Grid, row.lon, row.lat, fn)
				result, err = location.Intersect(result, obs)
				if err != nil {
					return err
				}
			}

			vacuous, err := result.Vacuous()
			if err != nil {
				return err
			}
			if vacuous {
				fmt.Println("result: vacuous (observations are mutually inconsistent with the baseline)")
				return nil
			}

			lon, lat, err := result.Centroid()
			if err != nil {
				return err
			}
			fmt.Printf("centroid: (%g, %g)\n", lon, lat)

			if savePath != "" {
				sf, err := os.Create(savePath)
				if err != nil {
					return err
				}
				defer sf.Close()
				return result.Save(sf)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mapPath, "map", "", "baseline map file (required)")
	cmd.Flags().StringVar(&obsPath, "observations", "", "CSV file of lon,lat,calibration,rtt... rows (required)")
	cmd.Flags().StringVar(&savePath, "save", "", "write the resulting Location to this file")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("observations")
	return cmd
}
