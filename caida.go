/* ============================================================= *\
   caida.go

   Parser for CAIDA's "AS relationships" dataset: pipe-delimited lines
   of the form

       <asn_a>|<asn_b>|<code>|<source>

   code 0 means asn_a and asn_b are peers (P2P); code -1 means asn_a
   is a provider of asn_b (so asn_a sees asn_b as a customer, and
   asn_b sees asn_a as a provider). Comment lines start with '#'.

   Grounded on original_source/RelationshipsReader.py for the line
   validation rules (exactly 4 fields, first two numeric, third
   numeric after stripping a leading '-'), adapted to this module's
   Relation enum (C2P=0, P2P=1, P2C=2). Decompression via
   compressedReader, following the teacher's NewCompressedReader use
   in caida_file_readers.go.
\* ============================================================= */

package bgpsim

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRelationships reads a CAIDA as-rel file and returns, for every
// ASN mentioned, its neighbour set with relation codes per this
// module's enum.
func parseRelationships(filename string) (map[int]map[int]Neighbour, error) {
	r := newCompressedReader(filename)
	if err := r.Open(); err != nil {
		return nil, err
	}
	defer r.Close()

	relationships := make(map[int]map[int]Neighbour)
	scanner := r.Scanner()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Contains(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseRelationLine(line, relationships); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, filename, err)
	}
	return relationships, nil
}

func parseRelationLine(line string, relationships map[int]map[int]Neighbour) error {
	fields := strings.Split(line, "|")
	if len(fields) != 4 {
		return fmt.Errorf("%w: expected 4 fields, got %d", ErrInputFormat, len(fields))
	}

	asnA, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("%w: asn_a %q not numeric", ErrInputFormat, fields[0])
	}
	asnB, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: asn_b %q not numeric", ErrInputFormat, fields[1])
	}
	code, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("%w: code %q not numeric", ErrInputFormat, fields[2])
	}

	ensureASN(relationships, asnA)
	ensureASN(relationships, asnB)

	switch code {
	case 0:
		relationships[asnA][asnB] = Neighbour{Relation: P2P}
		relationships[asnB][asnA] = Neighbour{Relation: P2P}
	case -1:
		relationships[asnA][asnB] = Neighbour{Relation: P2C}
		relationships[asnB][asnA] = Neighbour{Relation: C2P}
	default:
		return fmt.Errorf("%w: unrecognised relationship code %d", ErrInputFormat, code)
	}
	return nil
}

func ensureASN(relationships map[int]map[int]Neighbour, asn int) {
	if _, ok := relationships[asn]; !ok {
		relationships[asn] = make(map[int]Neighbour)
	}
}
