// Package export renders decoded schedules to machine and human
// readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/pumpflow/core/model"
	"github.com/kilianp07/pumpflow/core/schedule"
)

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, s *schedule.Schedule) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// WriteCSV writes one row per slot: activation bits for every pump,
// pumped volume, demand and end-of-slot reservoir level.
func WriteCSV(w io.Writer, sc model.Scenario, s *schedule.Schedule) error {
	cw := csv.NewWriter(w)
	header := []string{"slot"}
	for _, p := range sc.Pumps {
		header = append(header, p.Name)
	}
	header = append(header, "pump_flow", "demand", "reservoir")
	if err := cw.Write(header); err != nil {
		return err
	}
	for t := 0; t < sc.NumSlots(); t++ {
		rec := []string{strconv.Itoa(t + 1)}
		for p := range sc.Pumps {
			bit := "0"
			if s.Active[p][t] {
				bit = "1"
			}
			rec = append(rec, bit)
		}
		rec = append(rec,
			strconv.FormatFloat(s.PumpFlow[t], 'f', -1, 64),
			strconv.FormatFloat(sc.Demand[t], 'f', -1, 64),
			strconv.FormatFloat(s.Reservoir[t+1], 'f', 2, 64),
		)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders the per-pump activation table with the reservoir
// level per slot and the schedule totals.
func WriteTable(w io.Writer, sc model.Scenario, s *schedule.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprint(tw, "\t")
	for t := 0; t < sc.NumSlots(); t++ {
		fmt.Fprintf(tw, "%d\t", t+1)
	}
	fmt.Fprintln(tw)
	for p, pump := range sc.Pumps {
		fmt.Fprintf(tw, "%s\t", pump.Name)
		for t := 0; t < sc.NumSlots(); t++ {
			bit := 0
			if s.Active[p][t] {
				bit = 1
			}
			fmt.Fprintf(tw, "%d\t", bit)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprint(tw, "Level:\t")
	for t := 0; t < sc.NumSlots(); t++ {
		fmt.Fprintf(tw, "%.0f\t", s.Reservoir[t+1])
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal flow:\t%.2f\nTotal cost:\t%.2f\n", s.TotalFlow, s.TotalCost)
	return nil
}
