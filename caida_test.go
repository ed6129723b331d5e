package bgpsim

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestParseRelationshipsPeerAndProviderCodes(t *testing.T) {
	path := writeTempFile(t, "as-rel.txt", ""+
		"# comment line, ignored\n"+
		"1|2|0|source\n"+
		"2|3|-1|source\n")

	relationships, err := parseRelationships(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relationships[1][2].Relation != P2P {
		t.Fatalf("expected 1-2 peer, got %v", relationships[1][2].Relation)
	}
	if relationships[2][1].Relation != P2P {
		t.Fatalf("expected 2-1 peer, got %v", relationships[2][1].Relation)
	}
	if relationships[2][3].Relation != P2C {
		t.Fatalf("expected 2 sees 3 as customer, got %v", relationships[2][3].Relation)
	}
	if relationships[3][2].Relation != C2P {
		t.Fatalf("expected 3 sees 2 as provider, got %v", relationships[3][2].Relation)
	}
}

func TestParseRelationshipsRejectsMalformedLine(t *testing.T) {
	path := writeTempFile(t, "as-rel.txt", "1|2|0\n") // missing 4th field

	if _, err := parseRelationships(path); err == nil {
		t.Fatal("expected an error for a malformed relationships line")
	}
}

func TestParseRelationshipsRejectsUnknownCode(t *testing.T) {
	path := writeTempFile(t, "as-rel.txt", "1|2|7|source\n")

	if _, err := parseRelationships(path); err == nil {
		t.Fatal("expected an error for an unrecognised relationship code")
	}
}
