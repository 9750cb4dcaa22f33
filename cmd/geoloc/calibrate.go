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

	"github.com/spf13/cobra"

	"github.com/zackw/active-geolocator/calibration"
)

func readDistRTTPairs(path string) (distsM, rttsMs []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		d, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		rtt, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, err
		}
		distsM = append(distsM, d)
		rttsMs = append(rttsMs, rtt)
	}
	return distsM, rttsMs, nil
}

func newCalibrateCmd() *cobra.Command {
	var inPath, kind string
	var sampleRTT float64
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "fit a calibration curve from distance,rtt observation pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dists, rtts, err := readDistRTTPairs(inPath)
			if err != nil {
				return err
			}

			var fitKind calibration.FitKind
			switch kind {
			case "cbg":
				fitKind = calibration.FitCBG
			case "quasi-octant":
				fitKind = calibration.FitQuasiOctant
			case "spotter":
				fitKind = calibration.FitSpotter
			default:
				return fmt.Errorf("unknown calibration kind %q (want cbg, quasi-octant, or spotter)", kind)
			}

			cal, usedFallback, err := calibration.NewWithFallback(fitKind, dists, rtts)
			if err != nil {
				return err
			}
			if usedFallback {
				fmt.Printf("%s did not converge on %d observations, fell back to physical-limits calibration\n", kind, len(dists))
			} else {
				fmt.Printf("fitted %s from %d observations\n", kind, len(dists))
			}
			if sampleRTT > 0 {
				minM, maxM := cal.DistanceRange([]float64{sampleRTT})
				fmt.Printf("distance range at rtt=%gms: [%g, %g] meters\n", sampleRTT, minM, maxM)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "data", "", "CSV file of distance_m,rtt_ms rows (required)")
	cmd.Flags().StringVar(&kind, "kind", "cbg", "calibration algorithm: cbg, quasi-octant, spotter")
	cmd.Flags().Float64Var(&sampleRTT, "sample-rtt", 0, "if set, print the distance range for this RTT")
	cmd.MarkFlagRequired("data")
	return cmd
}
