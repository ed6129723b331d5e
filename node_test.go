package bgpsim

import (
	"errors"
	"testing"
)

func peerNode(asn int, neighbours ...int) *Node {
	nbs := make(map[int]Neighbour, len(neighbours))
	for _, nb := range neighbours {
		nbs[nb] = Neighbour{Relation: P2P}
	}
	return NewNode(asn, nbs, nil, nil)
}

func TestUpdateSelectedPathFirstAnnouncement(t *testing.T) {
	n := peerNode(2, 1)

	updated, err := n.UpdateSelectedPath("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatal("expected first announcement to update loc_rib")
	}

	route, ok := n.SelectedRoute()
	if !ok || route.Path != "1" {
		t.Fatalf("expected selected route %q, got %+v (ok=%v)", "1", route, ok)
	}
}

func TestUpdateSelectedPathRejectsLoop(t *testing.T) {
	n := peerNode(2, 1, 3)
	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := n.UpdateSelectedPath("1,2,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatal("expected loop path to be rejected")
	}

	route, _ := n.SelectedRoute()
	if route.Path != "1" {
		t.Fatalf("loc_rib mutated by rejected loop path: got %q", route.Path)
	}
}

func TestUpdateSelectedPathPrefersHigherLocalPref(t *testing.T) {
	n := NewNode(4, map[int]Neighbour{
		1: {Relation: P2P, LocalPref: 10},
		2: {Relation: P2P, LocalPref: 20},
	}, nil, nil)

	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatal(err)
	}
	if _, err := n.UpdateSelectedPath("2"); err != nil {
		t.Fatal(err)
	}

	route, _ := n.SelectedRoute()
	if route.SourceASN != 2 {
		t.Fatalf("expected higher local-pref source 2 to win, got %d", route.SourceASN)
	}

	alts := n.AlternativeRoutes()
	if len(alts) != 1 || alts[0].SourceASN != 1 {
		t.Fatalf("expected exactly one alternative from source 1, got %+v", alts)
	}
}

func TestUpdateSelectedPathUniqueSourcePerRIB(t *testing.T) {
	n := peerNode(4, 1, 2)

	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatal(err)
	}
	if _, err := n.UpdateSelectedPath("2"); err != nil {
		t.Fatal(err)
	}
	// Replacement announcement from the same source that is currently
	// in loc_rib: source count must stay at two total, not grow.
	if _, err := n.UpdateSelectedPath("3,1"); err != nil {
		t.Fatal(err)
	}

	seen := map[int]bool{}
	if r, ok := n.SelectedRoute(); ok {
		seen[r.SourceASN] = true
	}
	for _, a := range n.AlternativeRoutes() {
		if seen[a.SourceASN] {
			t.Fatalf("source ASN %d present in both loc_rib and adj_rib_in", a.SourceASN)
		}
		seen[a.SourceASN] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected exactly 2 distinct source ASNs, got %d", len(seen))
	}
}

func TestUpdateSelectedPathRejectsNonNeighbourSource(t *testing.T) {
	n := peerNode(2, 1)

	updated, err := n.UpdateSelectedPath("99")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if updated {
		t.Fatal("expected announcement from a non-neighbour to be rejected")
	}
	if _, ok := n.SelectedRoute(); ok {
		t.Fatal("loc_rib must stay empty when the announcement is rejected")
	}

	// Same check once loc_rib is already populated, on the replacement
	// path through adj_rib_in.
	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatal(err)
	}
	updated, err = n.UpdateSelectedPath("99")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if updated {
		t.Fatal("expected announcement from a non-neighbour to be rejected")
	}
	route, _ := n.SelectedRoute()
	if route.Path != "1" {
		t.Fatalf("loc_rib mutated by rejected announcement: got %q", route.Path)
	}
	if len(n.AlternativeRoutes()) != 0 {
		t.Fatalf("adj_rib_in polluted by rejected announcement: got %+v", n.AlternativeRoutes())
	}
}

func TestPreparePublishOrigin(t *testing.T) {
	n := peerNode(1, 2, 3)
	path, recipients, err := n.PreparePublish()
	if err != nil {
		t.Fatal(err)
	}
	if path != "1" {
		t.Fatalf("expected origin path %q, got %q", "1", path)
	}
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
}

func TestPreparePublishValleyFreeSuppressesTransitExport(t *testing.T) {
	// node 3 learned its route from a provider (node 2); with
	// valley-free enabled it must only forward to its customers.
	n := NewNode(3, map[int]Neighbour{
		2: {Relation: C2P}, // 2 is 3's provider
		4: {Relation: P2P}, // 4 is 3's peer
		5: {Relation: P2C}, // 5 is 3's customer
	}, nil, nil)
	n.SetTrafficPrinciple(true)

	if _, err := n.UpdateSelectedPath("1,2"); err != nil {
		t.Fatal(err)
	}

	_, recipients, err := n.PreparePublish()
	if err != nil {
		t.Fatal(err)
	}
	if len(recipients) != 1 || recipients[0] != 5 {
		t.Fatalf("expected export restricted to customer {5}, got %v", recipients)
	}
}

func TestPreparePublishValleyFreeExportsEverywhereFromCustomerSource(t *testing.T) {
	n := NewNode(3, map[int]Neighbour{
		2: {Relation: C2P},
		4: {Relation: P2P},
		5: {Relation: P2C},
	}, nil, nil)
	n.SetTrafficPrinciple(true)

	if _, err := n.UpdateSelectedPath("1,5"); err != nil {
		t.Fatal(err)
	}

	_, recipients, err := n.PreparePublish()
	if err != nil {
		t.Fatal(err)
	}
	if len(recipients) != 3 {
		t.Fatalf("expected export to all 3 neighbours when route came from a customer, got %v", recipients)
	}
}

func TestSetRIBCheckpointRoundTrip(t *testing.T) {
	n := NewNode(2, map[int]Neighbour{
		1: {Relation: P2P, LocalPref: 0},
		3: {Relation: P2P, LocalPref: 10}, // higher pref: a hijack from 3 always outranks 1
	}, nil, nil)
	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatal(err)
	}

	n.SetRIB(true) // checkpoint
	if _, err := n.UpdateSelectedPath("99,3"); err != nil {
		t.Fatal(err)
	}
	mid, _ := n.SelectedRoute()
	if mid.SourceASN != 3 {
		t.Fatalf("expected hijack announcement to win selection, got source %d", mid.SourceASN)
	}

	n.SetRIB(false) // restore
	after, ok := n.SelectedRoute()
	if !ok || after.Path != "1" {
		t.Fatalf("expected loc_rib restored to %q, got %+v (ok=%v)", "1", after, ok)
	}
}

func TestResetClearsRIB(t *testing.T) {
	n := peerNode(2, 1)
	if _, err := n.UpdateSelectedPath("1"); err != nil {
		t.Fatal(err)
	}
	n.Reset()
	if _, ok := n.SelectedRoute(); ok {
		t.Fatal("expected loc_rib empty after Reset")
	}
}
