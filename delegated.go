/* ============================================================= *\
   delegated.go

   Parser for RIR delegated-statistics summary files: a directory of
   one file per registry, each pipe-delimited with the ASN block at
   field index 2 == "asn" and status at field index 6 == "allocated"
   or "assigned". Files are parsed concurrently across a fixed worker
   pool, following the teacher's directory-of-independent-files
   pattern in readers.go (parse_warts/generate_warts_parser), and
   accumulate into a concurrency-safe set as in rib.go's count_ribs.

   Grounded on original_source/DelegatedReader.py for line semantics.
\* ============================================================= */

package bgpsim

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	pool "github.com/Emeline-1/pool"
)

const delegatedWorkers = 16

// parseDelegated reads every file in dir and returns the set of
// allocated/assigned ASNs across all of them.
func parseDelegated(dir string) (map[int]struct{}, error) {
	files := pool.Get_directory_files(dir)
	if files == nil {
		return nil, fmt.Errorf("%w: %s: not a directory or unreadable", ErrIO, dir)
	}

	asns := createSafeSet()
	var errMux sync.Mutex
	var parseErr error

	parseOne := func(filename string) {
		if err := parseDelegatedFile(filename, asns); err != nil {
			errMux.Lock()
			if parseErr == nil {
				parseErr = err
			}
			errMux.Unlock()
		}
	}
	pool.Launch_pool(delegatedWorkers, *files, parseOne)

	if parseErr != nil {
		return nil, parseErr
	}

	allocated := make(map[int]struct{}, asns.len())
	for _, key := range asns.unsafeKeys() {
		asn, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		allocated[asn] = struct{}{}
	}
	return allocated, nil
}

func parseDelegatedFile(filename string, asns *safeSet) error {
	r := newCompressedReader(filename)
	if err := r.Open(); err != nil {
		return err
	}
	defer r.Close()

	scanner := r.Scanner()
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "#") || strings.Contains(line, "*") {
			continue
		}
		for _, asn := range parseDelegatedLine(line) {
			asns.add(strconv.Itoa(asn))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, filename, err)
	}
	return nil
}

// parseDelegatedLine returns the ASNs a delegated-summary line
// allocates, or nil if the line isn't an ASN record.
func parseDelegatedLine(line string) []int {
	fields := strings.Split(line, "|")
	if len(fields) < 7 {
		return nil
	}
	if fields[2] != "asn" {
		return nil
	}
	if fields[6] != "allocated" && fields[6] != "assigned" {
		return nil
	}

	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil
	}
	count, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil
	}

	out := make([]int, 0, count)
	for asn := start; asn < start+count; asn++ {
		out = append(out, asn)
	}
	return out
}
