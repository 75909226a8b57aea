package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileCreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := SafeWriteFile(p, []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "{}" {
		t.Fatalf("unexpected content %q (%v)", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"read": 1}, "    ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{\n    \"read\": 1\n}" {
		t.Fatalf("unexpected json: %s", b)
	}
}
