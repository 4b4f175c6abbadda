package intcode

import (
	"os"
	"testing"

	"gopkg.in/yaml.v2"
)

// YAMLInstruction represents a single instruction in instrs.yaml
type YAMLInstruction struct {
	Opcode int    `yaml:"opcode"`
	Name   string `yaml:"name"`
	Args   []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"args"`
	Format string `yaml:"format"`
}

// ISAFile represents the root structure of instrs.yaml
type ISAFile struct {
	Instructions []YAMLInstruction `yaml:"instructions"`
}

func TestInstructionTableValidation(t *testing.T) {
	data, err := os.ReadFile("../instrs.yaml")
	if err != nil {
		t.Fatalf("Error reading YAML file: %v", err)
	}

	var isa ISAFile
	if err := yaml.Unmarshal(data, &isa); err != nil {
		t.Fatalf("Error parsing YAML: %v", err)
	}

	if len(isa.Instructions) != len(instrTable) {
		t.Errorf("instrs.yaml lists %d instructions, Go table has %d", len(isa.Instructions), len(instrTable))
	}

	for _, yamlInstr := range isa.Instructions {
		op := Opcode(yamlInstr.Opcode)
		def, exists := instrTable[op]
		if !exists {
			t.Errorf("Opcode %d (%s) not found in Go instruction table", yamlInstr.Opcode, yamlInstr.Name)
			continue
		}

		if yamlInstr.Name != opcode_str_lower(op) {
			t.Errorf("Opcode %d name mismatch - YAML: %s, Go: %s", yamlInstr.Opcode, yamlInstr.Name, opcode_str_lower(op))
		}

		if len(def.Params) != len(yamlInstr.Args) {
			t.Errorf("Opcode %d (%s) argument count mismatch - YAML: %d, Go: %d",
				yamlInstr.Opcode, yamlInstr.Name, len(yamlInstr.Args), len(def.Params))
			continue
		}

		for i, yamlArg := range yamlInstr.Args {
			if def.Params[i].String() != yamlArg.Type {
				t.Errorf("Opcode %d (%s) arg %d (%s) role mismatch - YAML: %s, Go: %s",
					yamlInstr.Opcode, yamlInstr.Name, i, yamlArg.Name, yamlArg.Type, def.Params[i])
			}
		}
	}
}
