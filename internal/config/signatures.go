package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
)

// signatureFile is the on-disk layout of a standalone signature set:
//
//	signatures:
//	  - actor: PlayerA
//	    sequence: [Decagonal, Cubic orthogonal, Hexagonal tetragonal]
type signatureFile struct {
	Signatures []assembler.Signature `yaml:"signatures"`
}

// LoadSignatures reads a signature set from a YAML file. File order is match order.
func LoadSignatures(path string) ([]assembler.Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}
	var f signatureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse signatures %s: %v", ErrInvalid, path, err)
	}
	if len(f.Signatures) == 0 {
		return nil, fmt.Errorf("%w: %s defines no signatures", ErrInvalid, path)
	}
	return f.Signatures, nil
}

// Marshal renders c as YAML.
func Marshal(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
