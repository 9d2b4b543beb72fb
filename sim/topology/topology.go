// Package topology reads BRITE-format network topology files into a
// delay/bandwidth matrix consumable by sim.Kernel.SetNetworkDelay (spec §6
// "topology file reader (BRITE)", an external collaborator with a narrow
// contract).
package topology

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NetworkTopology holds the per-node-pair delay and bandwidth figures
// parsed from a BRITE file. Node ids are BRITE's own node numbering,
// mapped onto sim.EntityID by the caller.
type NetworkTopology struct {
	NumNodes int
	delay    map[[2]int]float64
	bw       map[[2]int]float64
}

// Delay returns the link delay between BRITE node ids a and b, or 0 if no
// edge was recorded between them.
func (nt *NetworkTopology) Delay(a, b int) float64 {
	return nt.delay[key(a, b)]
}

// Bandwidth returns the link bandwidth between BRITE node ids a and b, or
// 0 if no edge was recorded between them.
func (nt *NetworkTopology) Bandwidth(a, b int) float64 {
	return nt.bw[key(a, b)]
}

func key(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Parse reads a BRITE 1.0 topology file: a "Nodes:" section (one line per
// node, id x y ...) followed by an "Edges:" section (one line per edge, id
// from to length delay bandwidth ...). Only node count and the from/to/
// delay/bandwidth edge fields are retained; BRITE's remaining columns
// (AS membership, edge type, coordinates) don't feed anything in this
// simulator and are ignored.
func Parse(r io.Reader) (*NetworkTopology, error) {
	nt := &NetworkTopology{delay: make(map[[2]int]float64), bw: make(map[[2]int]float64)}

	scanner := bufio.NewScanner(r)
	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "Nodes:"):
			section = "nodes"
			continue
		case strings.HasPrefix(line, "Edges:"):
			section = "edges"
			continue
		case strings.HasPrefix(line, "Topology:") || strings.HasPrefix(line, "Model"):
			section = ""
			continue
		}

		fields := strings.Fields(line)
		switch section {
		case "nodes":
			nt.NumNodes++
		case "edges":
			if len(fields) < 6 {
				continue
			}
			from, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("topology: edge line %q: bad from id: %w", line, err)
			}
			to, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("topology: edge line %q: bad to id: %w", line, err)
			}
			delay, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, fmt.Errorf("topology: edge line %q: bad delay: %w", line, err)
			}
			bw, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return nil, fmt.Errorf("topology: edge line %q: bad bandwidth: %w", line, err)
			}
			k := key(from, to)
			nt.delay[k] = delay
			nt.bw[k] = bw
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nt, nil
}
