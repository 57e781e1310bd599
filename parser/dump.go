package parser

import (
	"fmt"
	"strings"
)

// Dump renders an Expr tree as an indented, Go-syntax-ish debug string,
// the same role the reference implementation's derived Debug impl
// played for ad hoc AST inspection.
func Dump(e Expr) string {
	var b strings.Builder
	dump(&b, e, 0)
	return b.String()
}

func dump(b *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := e.(type) {
	case StringExpr:
		fmt.Fprintf(b, "%sString(%q)", indent, n.Value)
	case ArrayExpr:
		fmt.Fprintf(b, "%sArray(%v)", indent, n.Elements)
	case VariableExpr:
		fmt.Fprintf(b, "%sVariable(%s)", indent, n.Name)
	case ConstExpr:
		fmt.Fprintf(b, "%sConst(%s)", indent, n.Name)
	case BinaryExpr:
		fmt.Fprintf(b, "%sBinary {\n", indent)
		dump(b, n.Left, depth+1)
		fmt.Fprintf(b, ",\n%s  op: %q,\n", indent, n.Op)
		dump(b, n.Right, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case UnaryExpr:
		fmt.Fprintf(b, "%sUnary {\n", indent)
		dump(b, n.Operand, depth+1)
		fmt.Fprintf(b, ",\n%s  op: %q\n%s}", indent, n.Op, indent)
	case FuncExpr:
		fmt.Fprintf(b, "%sFunc { name: %q, args: [\n", indent, n.Name)
		for i, a := range n.Args {
			dump(b, a, depth+1)
			if i != len(n.Args)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s]}", indent)
	case IfExpr:
		fmt.Fprintf(b, "%sIf {\n", indent)
		dump(b, n.Cond, depth+1)
		b.WriteString(",\n")
		dump(b, n.Then, depth+1)
		b.WriteString(",\n")
		dump(b, n.Else, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case WhileExpr:
		fmt.Fprintf(b, "%sWhile {\n", indent)
		dump(b, n.Cond, depth+1)
		b.WriteString(",\n")
		dump(b, n.Then, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case ForExpr:
		fmt.Fprintf(b, "%sFor { iter: %d, var: %q,\n", indent, n.Iter, n.Var)
		dump(b, n.Then, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case DefineExpr:
		fmt.Fprintf(b, "%sDefine { var: %q,\n", indent, n.Var)
		dump(b, n.Val, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case TryExpr:
		fmt.Fprintf(b, "%sTry {\n", indent)
		dump(b, n.Attempt, depth+1)
		b.WriteString(",\n")
		dump(b, n.Catch, depth+1)
		fmt.Fprintf(b, "\n%s}", indent)
	case YieldExpr:
		fmt.Fprintf(b, "%sYield(\n", indent)
		dump(b, n.Value, depth+1)
		fmt.Fprintf(b, "\n%s)", indent)
	case BreakExpr:
		fmt.Fprintf(b, "%sBreak()", indent)
	case BlockExpr:
		fmt.Fprintf(b, "%sBlock([\n", indent)
		for i, sub := range n.Exprs {
			dump(b, sub, depth+1)
			if i != len(n.Exprs)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s])", indent)
	default:
		fmt.Fprintf(b, "%s<unknown>", indent)
	}
}
