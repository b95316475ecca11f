// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

const latencyCornerLabel = "From/To"

// LatencyMatrix is the simulated latency between every ordered pair of nodes.
// All pairs share one value; the diagonal is emitted but unused.
type LatencyMatrix struct {
	Names   []string
	Latency time.Duration
}

// Rows returns the matrix as text, header row first.
// Cells are whole milliseconds.
func (m LatencyMatrix) Rows() [][]string {
	header := append([]string{latencyCornerLabel}, m.Names...)
	rows := [][]string{header}
	cell := strconv.FormatInt(m.Latency.Milliseconds(), 10)
	for _, name := range m.Names {
		row := make([]string, 0, len(m.Names)+1)
		row = append(row, name)
		for range m.Names {
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m LatencyMatrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(m.Rows()); err != nil {
		return err
	}
	return cw.Error()
}
