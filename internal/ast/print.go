package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node. It is
// the form Decode reads back and cmd/hexencheck accepts as input.
// Positions are omitted, so the output does not change when only
// column/line bookkeeping changes.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(node interface{}) interface{} {
	switch n := node.(type) {
	case nil:
		return nil
	case *Program:
		funcs := make([]interface{}, len(n.Funcs))
		for i, f := range n.Funcs {
			funcs[i] = simplify(f)
		}
		return map[string]interface{}{"type": "Program", "funcs": funcs}
	case *Func:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = map[string]interface{}{
				"name": p.Name, "mut": p.IsMut, "type": simplify(p.Type),
			}
		}
		return map[string]interface{}{
			"type": "Func", "name": n.Name, "params": params,
			"returns": simplify(n.ReturnType), "body": simplify(n.Body),
		}
	case *Block:
		stmts := make([]interface{}, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = simplify(s)
		}
		return map[string]interface{}{"type": "Block", "stmts": stmts}
	case *NameType:
		return map[string]interface{}{"type": "NameType", "name": n.Name}
	case *ArrayType:
		dims := make([]interface{}, len(n.Dims))
		for i, d := range n.Dims {
			if d.Inferred {
				dims[i] = "_"
			} else {
				dims[i] = d.Size
			}
		}
		return map[string]interface{}{"type": "ArrayType", "dims": dims, "elem": simplify(n.Elem)}
	case *ValDecl:
		return map[string]interface{}{
			"type": "ValDecl", "name": n.Name, "declared": simplify(n.DeclaredType), "init": simplify(n.Init),
		}
	case *MutDecl:
		return map[string]interface{}{
			"type": "MutDecl", "name": n.Name, "declared": simplify(n.DeclaredType), "init": simplify(n.Init),
		}
	case *Assign:
		return map[string]interface{}{"type": "Assign", "target": simplify(n.Target), "value": simplify(n.Value)}
	case *Return:
		return map[string]interface{}{"type": "Return", "value": simplify(n.Value)}
	case *Yield:
		return map[string]interface{}{"type": "Yield", "value": simplify(n.Value)}
	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "value": simplify(n.Value)}
	case *BlockStmt:
		return map[string]interface{}{"type": "BlockStmt", "body": simplify(n.Body)}
	case *IfStmt:
		return map[string]interface{}{
			"type": "IfStmt", "cond": simplify(n.Cond), "then": simplify(n.Then),
			"else": simplify(n.Else), "elseif": simplify(n.ElseIf),
		}
	case *Literal:
		return map[string]interface{}{"type": "Literal", "kind": n.Kind, "text": n.Text}
	case *Undef:
		return map[string]interface{}{"type": "Undef"}
	case *Identifier:
		return map[string]interface{}{"type": "Identifier", "name": n.Name}
	case *BinaryExpr:
		return map[string]interface{}{"type": "BinaryExpr", "op": n.Op, "left": simplify(n.Left), "right": simplify(n.Right)}
	case *UnaryExpr:
		return map[string]interface{}{"type": "UnaryExpr", "op": n.Op, "operand": simplify(n.Operand)}
	case *ConversionExpr:
		return map[string]interface{}{"type": "ConversionExpr", "value": simplify(n.Value), "target": simplify(n.Target)}
	case *ArrayLiteral:
		elems := make([]interface{}, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = simplify(e)
		}
		return map[string]interface{}{"type": "ArrayLiteral", "elements": elems}
	case *ArrayAccess:
		return map[string]interface{}{"type": "ArrayAccess", "array": simplify(n.Array), "index": simplify(n.Index)}
	case *ArrayCopy:
		return map[string]interface{}{"type": "ArrayCopy", "array": simplify(n.Array)}
	case *PropertyAccess:
		return map[string]interface{}{"type": "PropertyAccess", "object": simplify(n.Object), "name": n.Name}
	case *BlockExpr:
		return map[string]interface{}{"type": "BlockExpr", "body": simplify(n.Body)}
	case *IfExpr:
		return map[string]interface{}{
			"type": "IfExpr", "cond": simplify(n.Cond), "then": simplify(n.Then),
			"else": simplify(n.Else), "elseif": simplify(n.ElseIf),
		}
	case *CallExpr:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplify(a)
		}
		return map[string]interface{}{"type": "CallExpr", "callee": n.Callee, "args": args}
	default:
		return fmt.Sprintf("%v", node)
	}
}
