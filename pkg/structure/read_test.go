package structure

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

const waterXYZ = `3
water molecule
O 0.000 0.000 0.117
H 0.000 0.757 -0.469
H 0.000 -0.757 -0.469
`

const naclPOSCAR = `NaCl rock salt
1.0
5.64 0.00 0.00
0.00 5.64 0.00
0.00 0.00 5.64
Na Cl
4 4
Direct
0.0 0.0 0.0
0.5 0.5 0.0
0.5 0.0 0.5
0.0 0.5 0.5
0.5 0.0 0.0
0.0 0.5 0.0
0.0 0.0 0.5
0.5 0.5 0.5
`

func TestParseXYZ(t *testing.T) {
	s, err := ParseXYZ([]byte(waterXYZ))
	if err != nil {
		t.Fatalf("ParseXYZ: %v", err)
	}
	if s.NumAtoms() != 3 {
		t.Fatalf("NumAtoms = %d, want 3", s.NumAtoms())
	}
	if s.Periodic() {
		t.Error("xyz structure should not be periodic")
	}
	if s.Species[0] != "O" || s.Species[1] != "H" {
		t.Errorf("Species = %v", s.Species)
	}
	if math.Abs(s.Positions[1][1]-0.757) > 1e-12 {
		t.Errorf("Positions[1] = %v", s.Positions[1])
	}
}

func TestParseXYZErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"BadCount", "x\ncomment\n"},
		{"TooFewAtoms", "5\ncomment\nH 0 0 0\n"},
		{"ShortLine", "1\ncomment\nH 0 0\n"},
		{"BadCoordinate", "1\ncomment\nH 0 0 z\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXYZ([]byte(tt.input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidStructure) {
				t.Errorf("error code = %q, want INVALID_STRUCTURE", errors.GetCode(err))
			}
		})
	}
}

func TestParsePOSCAR(t *testing.T) {
	s, err := ParsePOSCAR([]byte(naclPOSCAR))
	if err != nil {
		t.Fatalf("ParsePOSCAR: %v", err)
	}
	if s.NumAtoms() != 8 {
		t.Fatalf("NumAtoms = %d, want 8", s.NumAtoms())
	}
	if !s.Periodic() {
		t.Fatal("poscar structure should be periodic")
	}
	if s.Lattice.A != (Vec{5.64, 0, 0}) {
		t.Errorf("Lattice.A = %v", s.Lattice.A)
	}
	if s.Species[0] != "Na" || s.Species[4] != "Cl" {
		t.Errorf("Species = %v", s.Species)
	}
	// Fractional (0.5, 0.5, 0.5) -> Cartesian (2.82, 2.82, 2.82).
	want := Vec{2.82, 2.82, 2.82}
	got := s.Positions[7]
	for k := 0; k < 3; k++ {
		if math.Abs(got[k]-want[k]) > 1e-12 {
			t.Errorf("Positions[7] = %v, want %v", got, want)
		}
	}
}

func TestParsePOSCARScaling(t *testing.T) {
	scaled := `scaled
2.0
1.0 0.0 0.0
0.0 1.0 0.0
0.0 0.0 1.0
H
1
Direct
0.5 0.0 0.0
`
	s, err := ParsePOSCAR([]byte(scaled))
	if err != nil {
		t.Fatalf("ParsePOSCAR: %v", err)
	}
	if s.Lattice.A != (Vec{2, 0, 0}) {
		t.Errorf("scaled Lattice.A = %v, want (2,0,0)", s.Lattice.A)
	}
	if math.Abs(s.Positions[0][0]-1.0) > 1e-12 {
		t.Errorf("Positions[0] = %v, want x=1", s.Positions[0])
	}
}

func TestParsePOSCARRejectsVASP4(t *testing.T) {
	vasp4 := `no symbols
1.0
4.0 0.0 0.0
0.0 4.0 0.0
0.0 0.0 4.0
2
Direct
0.0 0.0 0.0
0.5 0.5 0.5
`
	if _, err := ParsePOSCAR([]byte(vasp4)); err == nil {
		t.Fatal("VASP 4 format should be rejected")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	xyzPath := filepath.Join(dir, "water.xyz")
	if err := os.WriteFile(xyzPath, []byte(waterXYZ), 0644); err != nil {
		t.Fatal(err)
	}
	if s, err := ReadFile(xyzPath); err != nil || s.NumAtoms() != 3 {
		t.Errorf("ReadFile(xyz) = %v, %v", s, err)
	}

	poscarPath := filepath.Join(dir, "POSCAR")
	if err := os.WriteFile(poscarPath, []byte(naclPOSCAR), 0644); err != nil {
		t.Fatal(err)
	}
	if s, err := ReadFile(poscarPath); err != nil || !s.Periodic() {
		t.Errorf("ReadFile(POSCAR) = %v, %v", s, err)
	}

	_, err := ReadFile(filepath.Join(dir, "missing.xyz"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}

	unknown := filepath.Join(dir, "atoms.dat")
	if err := os.WriteFile(unknown, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(unknown); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unknown extension: code = %q, want UNSUPPORTED", errors.GetCode(err))
	}
}
