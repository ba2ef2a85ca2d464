package pointset

import (
	"strings"
	"testing"
)

func TestReadJSONL(t *testing.T) {
	input := `{"id":"a","point":[1,1]}

{"id":"b","point":[2.5,3.5]}
{"id":"c","point":[0,-4]}
`
	batch, err := ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if batch.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", batch.Len())
	}
	if batch.IDs[1] != "b" {
		t.Errorf("IDs[1] = %q, want %q", batch.IDs[1], "b")
	}
	if batch.Points[1][0] != 2.5 || batch.Points[1][1] != 3.5 {
		t.Errorf("Points[1] = %v, want [2.5 3.5]", batch.Points[1])
	}
}

func TestReadJSONL_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"broken json", `{"id":"a","point":[1,1]` + "\n"},
		{"missing id", `{"point":[1,1]}`},
		{"missing point", `{"id":"a"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadJSONL(strings.NewReader(tc.input)); err == nil {
				t.Errorf("ReadJSONL(%q) expected an error", tc.input)
			}
		})
	}
}

func TestReadJSONL_Empty(t *testing.T) {
	batch, err := ReadJSONL(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if batch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", batch.Len())
	}
}
