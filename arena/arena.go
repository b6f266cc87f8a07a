package arena

import (
	"os"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
)

func insertPath(s *space.Space, path []byte) (bool, error) {
	cp := make([]byte, len(path))
	copy(cp, path)
	return s.Insert(expr.New(cp))
}

// Save writes s's arena encoding to path, truncating any existing file.
func Save(path string, s *space.Space, compress bool) error {
	buf, err := Encode(s, compress)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Load memory-maps path read-only (mmapFile, implemented per-OS) and
// decodes it into a fresh Space without copying the file into a
// separately-allocated read buffer first.
func Load(path string, interner symbol.Interner) (*space.Space, error) {
	m, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	return Decode(m.Bytes(), interner)
}
