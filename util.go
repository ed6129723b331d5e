/* ============================================================= *\
   util.go

   Generic path helpers. Trimmed from the teacher's misc.go to the
   subset this domain exercises: splitting and loop-checking an AS
   path string.
\* ============================================================= */

package bgpsim

import (
	"strconv"
	"strings"
)

// splitPath splits a comma-joined AS path into its string components,
// oldest-first.
func splitPath(path string) []string {
	return strings.Split(path, ",")
}

// pathContainsASN reports whether asn already appears in parts,
// mirroring the teacher's routing_loop/isLoop helpers.
func pathContainsASN(parts []string, asn int) bool {
	target := strconv.Itoa(asn)
	for _, p := range parts {
		if p == target {
			return true
		}
	}
	return false
}

// lastASN parses the last element of a split AS path.
func lastASN(parts []string) (int, error) {
	return strconv.Atoi(parts[len(parts)-1])
}

