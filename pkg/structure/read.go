package structure

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// ReadFile reads an atomic structure, dispatching on the file name:
// .xyz for molecular geometries, .poscar/.vasp (or a bare POSCAR/CONTCAR
// filename) for periodic VASP structures.
//
// Returns FILE_NOT_FOUND if the path does not exist, UNSUPPORTED for an
// unrecognized extension, and INVALID_STRUCTURE for malformed content.
func ReadFile(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "structure file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "read %s", path)
	}

	base := filepath.Base(path)
	switch {
	case strings.EqualFold(filepath.Ext(path), ".xyz"):
		return ParseXYZ(data)
	case strings.EqualFold(filepath.Ext(path), ".poscar"),
		strings.EqualFold(filepath.Ext(path), ".vasp"),
		strings.HasPrefix(base, "POSCAR"),
		strings.HasPrefix(base, "CONTCAR"):
		return ParsePOSCAR(data)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unrecognized structure file %s", base)
}
