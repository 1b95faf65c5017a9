package ast

import (
	"encoding/json"
	"testing"
)

func TestPrintDeterministic(t *testing.T) {
	prog := &Program{
		Funcs: []*Func{
			{
				Name: "add",
				Params: []*Param{
					{Name: "a", Type: &NameType{Name: "i32"}},
					{Name: "b", Type: &NameType{Name: "i32"}},
				},
				ReturnType: &NameType{Name: "i32"},
				Body: &Block{
					Stmts: []Stmt{
						&Return{Value: &BinaryExpr{
							Left:  &Identifier{Name: "a"},
							Op:    "+",
							Right: &Identifier{Name: "b"},
						}},
					},
				},
			},
		},
	}

	first := Print(prog)
	second := Print(prog)
	if first != second {
		t.Fatalf("Print is not deterministic:\n%s\n---\n%s", first, second)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(first), &parsed); err != nil {
		t.Fatalf("Print produced invalid JSON: %v", err)
	}
	if parsed["type"] != "Program" {
		t.Fatalf("expected Program root, got %v", parsed["type"])
	}
}

func TestPrintNil(t *testing.T) {
	if got := Print(nil); got != "null" {
		t.Fatalf("Print(nil) = %q, want \"null\"", got)
	}
}

func TestDecodeRoundTripsThroughPrint(t *testing.T) {
	prog := &Program{
		Funcs: []*Func{
			{
				Name: "add",
				Params: []*Param{
					{Name: "a", Type: &NameType{Name: "i32"}},
					{Name: "b", Type: &NameType{Name: "i32"}},
				},
				ReturnType: &NameType{Name: "i32"},
				Body: &Block{
					Stmts: []Stmt{
						&ValDecl{Name: "sum", Init: &BinaryExpr{
							Left:  &Identifier{Name: "a"},
							Op:    "+",
							Right: &Identifier{Name: "b"},
						}},
						&Return{Value: &Identifier{Name: "sum"}},
					},
				},
			},
		},
	}

	decoded, err := Decode([]byte(Print(prog)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if Print(decoded) != Print(prog) {
		t.Fatalf("round trip changed shape:\nwant %s\ngot  %s", Print(prog), Print(decoded))
	}
}

func TestDecodeRejectsUnknownNodeType(t *testing.T) {
	_, err := Decode([]byte(`{"type": "NotARealNode"}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized node type")
	}
}

func TestDecodeRejectsNonProgramRoot(t *testing.T) {
	_, err := Decode([]byte(`{"type": "Identifier", "name": "x"}`))
	if err == nil {
		t.Fatal("expected an error when the root node is not a Program")
	}
}
