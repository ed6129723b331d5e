/* ============================================================= *\
   detectors.go

   Parser for the route-collector peer list: lines of the form

       <collector name> | <asn1> <asn2> ...

   classified by a substring match on the collector name ("rrc" ⇒
   RIPE RIS, "pch.net" ⇒ PCH, else RouteViews), optionally overridden
   by a Broker lookup (collectors.go). Grounded on
   original_source/DetectorASReader.py.
\* ============================================================= */

package bgpsim

import (
	"fmt"
	"strconv"
	"strings"
)

// CollectorProject names the three route-collector projects this
// module recognises.
type CollectorProject string

const (
	ProjectRIPERIS    CollectorProject = "RIPE RIS"
	ProjectPCH        CollectorProject = "PCH"
	ProjectRouteViews CollectorProject = "RouteViews"
)

// classifyCollector infers a collector's project from its name, per
// the substring rule spec.md §6 pins.
func classifyCollector(name string) CollectorProject {
	switch {
	case strings.Contains(name, "rrc"):
		return ProjectRIPERIS
	case strings.Contains(name, "pch.net"):
		return ProjectPCH
	default:
		return ProjectRouteViews
	}
}

// brokerProjectToCollectorProject maps a Broker API project string
// (e.g. "routeviews", "ris", "pch") onto our three-way enum. Unknown
// strings fall back to the substring heuristic's default.
func brokerProjectToCollectorProject(brokerProject string) CollectorProject {
	switch strings.ToLower(brokerProject) {
	case "ris":
		return ProjectRIPERIS
	case "pch":
		return ProjectPCH
	case "routeviews":
		return ProjectRouteViews
	default:
		return ProjectRouteViews
	}
}

// DetectorReader parses the collectors file, optionally cross-checking
// each collector's project against a Broker lookup (SPEC_FULL §4.7):
// when the lookup recognises a collector's name, its project wins
// over the substring heuristic.
type DetectorReader struct {
	overrides map[string]string // collector name -> Broker project string
}

// NewDetectorReader constructs a DetectorReader. overrides may be nil,
// in which case every collector is classified by the substring
// heuristic alone; pass the result of FetchCollectorProjects to enable
// the Broker override.
func NewDetectorReader(overrides map[string]string) *DetectorReader {
	return &DetectorReader{overrides: overrides}
}

// classify resolves a collector's project, preferring the Broker
// override when present.
func (r *DetectorReader) classify(name string) CollectorProject {
	if r != nil {
		if brokerProject, ok := r.overrides[name]; ok {
			return brokerProjectToCollectorProject(brokerProject)
		}
	}
	return classifyCollector(name)
}

// Read parses the collectors file, returning the set of ASNs peering
// with at least one collector and each collector's classified
// project.
func (r *DetectorReader) Read(filename string) (map[int]struct{}, map[string]CollectorProject, error) {
	f := newCompressedReader(filename)
	if err := f.Open(); err != nil {
		return nil, nil, err
	}
	defer f.Close()

	detectors := make(map[int]struct{})
	projects := make(map[string]CollectorProject)
	scanner := f.Scanner()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, asns, err := parseCollectorLine(line)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		projects[name] = r.classify(name)
		for _, asn := range asns {
			detectors[asn] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrIO, filename, err)
	}
	return detectors, projects, nil
}

// parseDetectors reads the collectors file and returns the set of
// ASNs peering with at least one collector, using the substring
// heuristic alone (no Broker override).
func parseDetectors(filename string) (map[int]struct{}, error) {
	detectors, _, err := NewDetectorReader(nil).Read(filename)
	return detectors, err
}

func parseCollectorLine(line string) (name string, asns []int, err error) {
	fields := strings.SplitN(line, "|", 2)
	if len(fields) != 2 {
		return "", nil, fmt.Errorf("%w: missing '|' separator", ErrInputFormat)
	}

	name = strings.TrimSpace(fields[0])
	peers := strings.Fields(strings.TrimSpace(fields[1]))
	asns = make([]int, 0, len(peers))
	for _, p := range peers {
		asn, convErr := strconv.Atoi(p)
		if convErr != nil {
			return "", nil, fmt.Errorf("%w: peer ASN %q not numeric", ErrInputFormat, p)
		}
		asns = append(asns, asn)
	}
	return name, asns, nil
}
