// Package goast is flagtrie's one concrete tree-abstraction collaborator:
// it parses Go source with go/parser and renders each "if" condition at
// every abstraction level. It registers itself for abstract.LanguageGo.
package goast

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/bastiangx/flagtrie/pkg/abstract"
)

func init() {
	abstract.Register(abstract.LanguageGo, Collector{})
}

// Collector finds every if-statement condition in a Go source file.
type Collector struct{}

// Collect implements abstract.Collector.
func (Collector) Collect(path string) ([]abstract.Abstractor, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("goast: read %s: %w", path, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, contents, parser.AllErrors)
	if err != nil && file == nil {
		return nil, fmt.Errorf("goast: parse %s: %w", path, err)
	}

	var predicates []abstract.Abstractor
	ast.Inspect(file, func(n ast.Node) bool {
		ifStmt, ok := n.(*ast.IfStmt)
		if !ok {
			return true
		}
		pos := fset.Position(ifStmt.Cond.Pos())
		predicates = append(predicates, &predicate{
			expr: ifStmt.Cond,
			fset: fset,
			loc: abstract.Predicate{
				Source: renderSource(fset, contents, ifStmt.Cond),
				File:   path,
				Line:   pos.Line,
			},
		})
		return true
	})
	return predicates, nil
}

type predicate struct {
	expr ast.Expr
	fset *token.FileSet
	loc  abstract.Predicate
}

func (p *predicate) Predicate() abstract.Predicate { return p.loc }

// Abstract renders the predicate's condition expression at the requested
// level. Never errors in practice (the expression already parsed
// successfully to reach here) but returns an error to satisfy the
// Abstractor contract other collaborators may need to fail through.
func (p *predicate) Abstract(level abstract.Level) (string, error) {
	var b strings.Builder
	render(&b, p.expr, level)
	return b.String(), nil
}

// render writes a parenthesized structural tree of expr, redacting
// identifiers and literals according to level:
//   - LevelMin: bare node-type tree, operators collapsed to a generic marker.
//   - LevelOne and LevelTwo: node-type tree with the actual operator token
//     kept, but identifiers/literals still collapsed to type-only leaves
//     ((identifier), (number_literal)) - the two levels render identically
//     for this collaborator, since Go's AST gives no coarser-than-type
//     grouping to put between them.
//   - LevelMax: LevelOne/LevelTwo's tree with real identifier names and
//     literal values kept.
func render(b *strings.Builder, expr ast.Expr, level abstract.Level) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		b.WriteByte('(')
		b.WriteString("binary_expression")
		b.WriteByte(' ')
		if level >= abstract.LevelOne {
			b.WriteString(e.Op.String())
		} else {
			b.WriteString("op")
		}
		b.WriteByte(' ')
		render(b, e.X, level)
		b.WriteByte(' ')
		render(b, e.Y, level)
		b.WriteByte(')')
	case *ast.UnaryExpr:
		b.WriteByte('(')
		b.WriteString("unary_expression")
		b.WriteByte(' ')
		if level >= abstract.LevelOne {
			b.WriteString(e.Op.String())
		} else {
			b.WriteString("op")
		}
		b.WriteByte(' ')
		render(b, e.X, level)
		b.WriteByte(')')
	case *ast.ParenExpr:
		b.WriteByte('(')
		b.WriteString("parenthesized_expression")
		b.WriteByte(' ')
		render(b, e.X, level)
		b.WriteByte(')')
	case *ast.CallExpr:
		b.WriteByte('(')
		b.WriteString("call_expression")
		b.WriteByte(' ')
		render(b, e.Fun, level)
		for _, arg := range e.Args {
			b.WriteByte(' ')
			render(b, arg, level)
		}
		b.WriteByte(')')
	case *ast.SelectorExpr:
		b.WriteByte('(')
		b.WriteString("selector_expression")
		b.WriteByte(' ')
		render(b, e.X, level)
		b.WriteByte(' ')
		writeIdent(b, e.Sel.Name, level)
		b.WriteByte(')')
	case *ast.Ident:
		writeIdent(b, e.Name, level)
	case *ast.BasicLit:
		writeLiteral(b, e.Value, level)
	default:
		b.WriteString("(non_terminal_expression)")
	}
}

func writeIdent(b *strings.Builder, name string, level abstract.Level) {
	if level >= abstract.LevelMax {
		fmt.Fprintf(b, "(identifier %s)", name)
		return
	}
	b.WriteString("(identifier)")
}

func writeLiteral(b *strings.Builder, value string, level abstract.Level) {
	if level >= abstract.LevelMax {
		fmt.Fprintf(b, "(number_literal %s)", value)
		return
	}
	b.WriteString("(number_literal)")
}

// renderSource returns the literal source text of expr, falling back to a
// position range if the offsets somehow fall outside contents.
func renderSource(fset *token.FileSet, contents []byte, expr ast.Expr) string {
	start := fset.Position(expr.Pos())
	end := fset.Position(expr.End())
	if start.Offset >= 0 && end.Offset <= len(contents) && start.Offset <= end.Offset {
		return string(contents[start.Offset:end.Offset])
	}
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column, end.Line, end.Column)
}
