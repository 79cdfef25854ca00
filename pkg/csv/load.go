package csv

import (
	"github.com/shapestone/shape-core/pkg/ast"
)

// LoadRows reads every positional row of src into memory.
// On error the rows read so far are returned with it.
func (p *Parser) LoadRows(src LineSource) ([][]string, error) {
	sc, err := p.Open(src)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, 16)
	for sc.Scan() {
		rows = append(rows, sc.Row())
	}
	return rows, sc.Err()
}

// LoadNamedRows reads every named row of src into memory.
// On error the rows read so far are returned with it.
func (p *Parser) LoadNamedRows(src LineSource) ([]NamedRow, error) {
	sc, err := p.OpenNamed(src)
	if err != nil {
		return nil, err
	}

	rows := make([]NamedRow, 0, 16)
	for sc.Scan() {
		rows = append(rows, sc.Row())
	}
	return rows, sc.Err()
}

// LoadAST reads every positional row of src into a Shape AST.
//
// Returns *ast.ArrayDataNode - an array of rows, where each row is an
// ArrayDataNode of *ast.LiteralNode string fields. Each row node carries the
// input line it came from.
//
// Example:
//
//	node, err := csv.NewParser(csv.NoHeader).LoadAST(csv.StringLines("a,b\n1,2"))
//	rows := node.Elements() // two rows
func (p *Parser) LoadAST(src LineSource) (*ast.ArrayDataNode, error) {
	sc, err := p.Open(src)
	if err != nil {
		return nil, err
	}

	rows := make([]ast.SchemaNode, 0, 16)
	for sc.Scan() {
		pos := ast.NewPosition(0, sc.Line(), 1)
		fields := make([]ast.SchemaNode, len(sc.Row()))
		for i, value := range sc.Row() {
			fields[i] = ast.NewLiteralNode(value, pos)
		}
		rows = append(rows, ast.NewArrayDataNode(fields, pos))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return ast.NewArrayDataNode(rows, ast.ZeroPosition()), nil
}

// RowsFromAST converts a node produced by LoadAST back into rows.
func RowsFromAST(node *ast.ArrayDataNode) [][]string {
	rows := make([][]string, 0, node.Len())
	for _, elem := range node.Elements() {
		rowNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			continue
		}
		row := make([]string, 0, rowNode.Len())
		for _, field := range rowNode.Elements() {
			if lit, ok := field.(*ast.LiteralNode); ok {
				if s, ok := lit.Value().(string); ok {
					row = append(row, s)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
