package bgpsim

import "testing"

func TestPropagationTreeBranches(t *testing.T) {
	paths := map[int]string{
		2: "1",
		3: "1,2",
		4: "1,2,5",
	}
	root := PropagationTree(paths)

	if _, ok := root["1"]; !ok {
		t.Fatal("expected root branch '1'")
	}
	if _, ok := root["1"]["2"]; !ok {
		t.Fatal("expected '1' -> '2' branch")
	}
	if _, ok := root["1"]["2"]["5"]; !ok {
		t.Fatal("expected '1' -> '2' -> '5' branch")
	}
}

func TestOverlapReportGroupsSharedPrefix(t *testing.T) {
	paths := map[int]string{
		10: "1,2,3",
		11: "1,2,3",
		12: "1,9",
	}

	report := OverlapReport(paths)

	found := false
	for _, members := range report {
		has10, has11 := false, false
		for _, m := range members {
			if m == 10 {
				has10 = true
			}
			if m == 11 {
				has11 = true
			}
		}
		if has10 && has11 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ASNs 10 and 11 (identical selected path) grouped together, got %v", report)
	}
}
