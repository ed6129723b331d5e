/* ============================================================= *\
   collectors.go

   Optional enrichment: cross-check a collector's declared project
   against CAIDA's BGPStream Broker metadata API, rather than relying
   solely on the name-substring heuristic of detectors.go.

   Adapted from the teacher's broker_get_collectors (rib.go): same
   endpoint and JSON shape, but returns an error instead of logging
   and swallowing one, and reports every project the Broker names
   rather than filtering to "routeviews"/"ris" only.
\* ============================================================= */

package bgpsim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// brokerCollectorsURL is a var, not a const, so tests can point it at
// an httptest server instead of the real Broker.
var brokerCollectorsURL = "https://broker.bgpstream.caida.org/v2/meta/collectors"

// FetchCollectorProjects queries the CAIDA Broker for every known
// collector's declared project, returning collector name -> project
// identifier (e.g. "routeviews", "ris", "pch"). Pass the result to
// NewDetectorReader to override the substring heuristic.
func FetchCollectorProjects(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, brokerCollectorsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	var payload struct {
		Data struct {
			Collectors map[string]struct {
				Project string `json:"project"`
			} `json:"collectors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: unexpected broker response: %v", ErrInputFormat, err)
	}

	projects := make(map[string]string, len(payload.Data.Collectors))
	for name, entry := range payload.Data.Collectors {
		projects[name] = entry.Project
	}
	return projects, nil
}
