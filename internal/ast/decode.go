package ast

import (
	"encoding/json"
	"fmt"
)

// Decode parses the JSON shape produced by Print back into a *Program.
// This is the bridge cmd/hexencheck uses to load a program: the parser
// that would normally produce an ast.Program from Hexen source text is
// out of scope here (§6), so the CLI instead accepts this JSON form
// directly as its input format.
func Decode(data []byte) (*Program, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	prog, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("decode program: root node has type %q, want Program", typeOf(raw))
	}
	return prog, nil
}

func typeOf(raw map[string]interface{}) string {
	t, _ := raw["type"].(string)
	return t
}

func decodeNode(raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("decode: expected object, got %T", raw)
	}
	switch typeOf(m) {
	case "Program":
		funcs, err := decodeFuncList(m["funcs"])
		if err != nil {
			return nil, err
		}
		return &Program{Funcs: funcs}, nil
	case "Func":
		params, err := decodeParamList(m["params"])
		if err != nil {
			return nil, err
		}
		retType, err := decodeTypeRef(m["returns"])
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeNode(m["body"])
		if err != nil {
			return nil, err
		}
		body, _ := bodyNode.(*Block)
		return &Func{Name: str(m["name"]), Params: params, ReturnType: retType, Body: body}, nil
	case "Block":
		stmts, err := decodeStmtList(m["stmts"])
		if err != nil {
			return nil, err
		}
		return &Block{Stmts: stmts}, nil
	case "NameType":
		return &NameType{Name: str(m["name"])}, nil
	case "ArrayType":
		elem, err := decodeTypeRef(m["elem"])
		if err != nil {
			return nil, err
		}
		dimsRaw, _ := m["dims"].([]interface{})
		dims := make([]DimRef, len(dimsRaw))
		for i, d := range dimsRaw {
			if s, isStr := d.(string); isStr && s == "_" {
				dims[i] = DimRef{Inferred: true}
				continue
			}
			n, _ := d.(float64)
			dims[i] = DimRef{Size: int(n)}
		}
		return &ArrayType{Dims: dims, Elem: elem}, nil
	case "ValDecl":
		declared, err := decodeTypeRef(m["declared"])
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(m["init"])
		if err != nil {
			return nil, err
		}
		return &ValDecl{Name: str(m["name"]), DeclaredType: declared, Init: init}, nil
	case "MutDecl":
		declared, err := decodeTypeRef(m["declared"])
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(m["init"])
		if err != nil {
			return nil, err
		}
		return &MutDecl{Name: str(m["name"]), DeclaredType: declared, Init: init}, nil
	case "Assign":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &Assign{Target: target, Value: value}, nil
	case "Return":
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &Return{Value: value}, nil
	case "Yield":
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &Yield{Value: value}, nil
	case "ExprStmt":
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Value: value}, nil
	case "BlockStmt":
		bodyNode, err := decodeNode(m["body"])
		if err != nil {
			return nil, err
		}
		body, _ := bodyNode.(*Block)
		return &BlockStmt{Body: body}, nil
	case "IfStmt":
		return decodeIf(m, false)
	case "IfExpr":
		return decodeIf(m, true)
	case "Literal":
		return decodeLiteral(m)
	case "Undef":
		return &Undef{}, nil
	case "Identifier":
		return &Identifier{Name: str(m["name"])}, nil
	case "BinaryExpr":
		left, err := decodeExpr(m["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(m["right"])
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: str(m["op"]), Left: left, Right: right}, nil
	case "UnaryExpr":
		operand, err := decodeExpr(m["operand"])
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: str(m["op"]), Operand: operand}, nil
	case "ConversionExpr":
		value, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		target, err := decodeTypeRef(m["target"])
		if err != nil {
			return nil, err
		}
		return &ConversionExpr{Value: value, Target: target}, nil
	case "ArrayLiteral":
		elems, err := decodeExprList(m["elements"])
		if err != nil {
			return nil, err
		}
		return &ArrayLiteral{Elements: elems}, nil
	case "ArrayAccess":
		arr, err := decodeExpr(m["array"])
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(m["index"])
		if err != nil {
			return nil, err
		}
		return &ArrayAccess{Array: arr, Index: idx}, nil
	case "ArrayCopy":
		arr, err := decodeExpr(m["array"])
		if err != nil {
			return nil, err
		}
		return &ArrayCopy{Array: arr}, nil
	case "PropertyAccess":
		obj, err := decodeExpr(m["object"])
		if err != nil {
			return nil, err
		}
		return &PropertyAccess{Object: obj, Name: str(m["name"])}, nil
	case "BlockExpr":
		bodyNode, err := decodeNode(m["body"])
		if err != nil {
			return nil, err
		}
		body, _ := bodyNode.(*Block)
		return &BlockExpr{Body: body}, nil
	case "CallExpr":
		args, err := decodeExprList(m["args"])
		if err != nil {
			return nil, err
		}
		return &CallExpr{Callee: str(m["callee"]), Args: args}, nil
	default:
		return nil, fmt.Errorf("decode: unrecognized node type %q", typeOf(m))
	}
}

func decodeIf(m map[string]interface{}, asExpr bool) (interface{}, error) {
	cond, err := decodeExpr(m["cond"])
	if err != nil {
		return nil, err
	}
	thenNode, err := decodeNode(m["then"])
	if err != nil {
		return nil, err
	}
	then, _ := thenNode.(*Block)

	var elseBlock *Block
	if m["else"] != nil {
		elseNode, err := decodeNode(m["else"])
		if err != nil {
			return nil, err
		}
		elseBlock, _ = elseNode.(*Block)
	}

	var elseIfNode interface{}
	if m["elseif"] != nil {
		n, err := decodeNode(m["elseif"])
		if err != nil {
			return nil, err
		}
		elseIfNode = n
	}

	if asExpr {
		var elseIf *IfExpr
		if elseIfNode != nil {
			elseIf, _ = elseIfNode.(*IfExpr)
		}
		return &IfExpr{Cond: cond, Then: then, Else: elseBlock, ElseIf: elseIf}, nil
	}
	var elseIf *IfStmt
	if elseIfNode != nil {
		elseIf, _ = elseIfNode.(*IfStmt)
	}
	return &IfStmt{Cond: cond, Then: then, Else: elseBlock, ElseIf: elseIf}, nil
}

func decodeLiteral(m map[string]interface{}) (interface{}, error) {
	kindRaw, _ := m["kind"].(float64)
	kind := LiteralKind(int(kindRaw))
	lit := &Literal{Kind: kind, Text: str(m["text"])}
	switch kind {
	case IntLit:
		var v int64
		if _, err := fmt.Sscanf(lit.Text, "%d", &v); err == nil {
			lit.Int = v
		}
	case FloatLit:
		var v float64
		if _, err := fmt.Sscanf(lit.Text, "%g", &v); err == nil {
			lit.Float = v
		}
	case StringLit:
		lit.Str = lit.Text
	case BoolLit:
		lit.Bool = lit.Text == "true"
	}
	return lit, nil
}

func decodeTypeRef(raw interface{}) (TypeRef, error) {
	node, err := decodeNode(raw)
	if err != nil || node == nil {
		return nil, err
	}
	tr, ok := node.(TypeRef)
	if !ok {
		return nil, fmt.Errorf("decode: expected a type reference, got %T", node)
	}
	return tr, nil
}

func decodeExpr(raw interface{}) (Expr, error) {
	node, err := decodeNode(raw)
	if err != nil || node == nil {
		return nil, err
	}
	e, ok := node.(Expr)
	if !ok {
		return nil, fmt.Errorf("decode: expected an expression, got %T", node)
	}
	return e, nil
}

func decodeExprList(raw interface{}) ([]Expr, error) {
	items, _ := raw.([]interface{})
	out := make([]Expr, len(items))
	for i, item := range items {
		e, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeStmtList(raw interface{}) ([]Stmt, error) {
	items, _ := raw.([]interface{})
	out := make([]Stmt, len(items))
	for i, item := range items {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		s, ok := node.(Stmt)
		if !ok {
			return nil, fmt.Errorf("decode: expected a statement, got %T", node)
		}
		out[i] = s
	}
	return out, nil
}

func decodeFuncList(raw interface{}) ([]*Func, error) {
	items, _ := raw.([]interface{})
	out := make([]*Func, len(items))
	for i, item := range items {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		f, ok := node.(*Func)
		if !ok {
			return nil, fmt.Errorf("decode: expected a Func, got %T", node)
		}
		out[i] = f
	}
	return out, nil
}

func decodeParamList(raw interface{}) ([]*Param, error) {
	items, _ := raw.([]interface{})
	out := make([]*Param, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("decode: expected a param object, got %T", item)
		}
		t, err := decodeTypeRef(m["type"])
		if err != nil {
			return nil, err
		}
		mut, _ := m["mut"].(bool)
		out[i] = &Param{Name: str(m["name"]), Type: t, IsMut: mut}
	}
	return out, nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
