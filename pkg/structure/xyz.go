package structure

import (
	"strconv"
	"strings"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// ParseXYZ parses XYZ molecular geometry data: an atom count, a comment line,
// then one "Symbol x y z" line per atom. The result has no lattice.
func ParseXYZ(data []byte) (*Structure, error) {
	lines := splitLines(string(data))
	if len(lines) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "xyz: missing header")
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "xyz: bad atom count %q", lines[0])
	}
	if len(lines) < 2+n {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"xyz: expected %d atom lines, got %d", n, len(lines)-2)
	}

	s := &Structure{
		Positions: make([]Vec, n),
		Species:   make([]string, n),
	}
	for i := 0; i < n; i++ {
		fields := strings.Fields(lines[2+i])
		if len(fields) < 4 {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "xyz: short atom line %d", i+3)
		}
		s.Species[i] = fields[0]
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[1+k], 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err,
					"xyz: bad coordinate on line %d", i+3)
			}
			s.Positions[i][k] = v
		}
	}
	return s, s.Validate()
}

// splitLines splits on newlines without discarding interior blank lines,
// but trims a trailing blank tail.
func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
