package structure

import (
	"math"
	"testing"
)

func TestLatticeRoundTrip(t *testing.T) {
	lat := &Lattice{
		A: Vec{4.0, 0, 0},
		B: Vec{1.0, 3.5, 0},
		C: Vec{0.5, 0.2, 5.0},
	}

	fracs := []Vec{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
		{0.25, 0.75, 0.1},
	}
	for _, f := range fracs {
		cart := lat.Cartesian(f)
		back, err := lat.Fractional(cart)
		if err != nil {
			t.Fatalf("Fractional: %v", err)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(back[k]-f[k]) > 1e-12 {
				t.Errorf("round trip %v -> %v -> %v", f, cart, back)
			}
		}
	}
}

func TestLatticeVolume(t *testing.T) {
	if got := Cubic(3.0).Volume(); math.Abs(got-27.0) > 1e-12 {
		t.Errorf("Volume = %v, want 27", got)
	}
}

func TestTranslationsCoverCutoff(t *testing.T) {
	lat := Cubic(4.0)
	trans := lat.Translations(8.0)

	// Repeats per axis: ceil(8/4)+1 = 3, so 7 values per axis.
	if want := 7 * 7 * 7; len(trans) != want {
		t.Fatalf("got %d translations, want %d", len(trans), want)
	}

	var hasZero, hasFar bool
	for _, tr := range trans {
		if tr == (Vec{}) {
			hasZero = true
		}
		if tr == (Vec{12, 0, 0}) {
			hasFar = true
		}
	}
	if !hasZero {
		t.Error("zero translation missing")
	}
	if !hasFar {
		t.Error("translation at 3 cells missing")
	}
}

func TestStructureValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Structure
		wantErr bool
	}{
		{"Valid", Structure{Positions: []Vec{{0, 0, 0}}, Species: []string{"H"}}, false},
		{"Empty", Structure{}, true},
		{"Mismatch", Structure{Positions: []Vec{{0, 0, 0}}, Species: []string{"H", "O"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCrystalStructure(t *testing.T) {
	c := &Crystal{
		Lattice:    *Cubic(2.0),
		Fractional: []Vec{{0, 0, 0}, {0.5, 0.5, 0.5}},
		Species:    []string{"Cs", "Cl"},
	}
	s, err := c.Structure()
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if !s.Periodic() {
		t.Error("crystal structure should be periodic")
	}
	want := Vec{1, 1, 1}
	if got := s.Positions[1]; got != want {
		t.Errorf("Positions[1] = %v, want %v", got, want)
	}
}

func TestMolecularGraphValidate(t *testing.T) {
	m := &MolecularGraph{Species: []string{"O", "H", "H"}, Bonds: []Bond{{0, 1}, {0, 2}}}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := &MolecularGraph{Species: []string{"H"}, Bonds: []Bond{{0, 1}}}
	if err := bad.Validate(); err == nil {
		t.Error("out-of-range bond should fail validation")
	}

	self := &MolecularGraph{Species: []string{"H", "H"}, Bonds: []Bond{{1, 1}}}
	if err := self.Validate(); err == nil {
		t.Error("self-bond should fail validation")
	}
}
