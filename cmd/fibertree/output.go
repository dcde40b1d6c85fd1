package main

import (
	"fmt"
	"io"
	"os"

	"github.com/delaneyj/tinyfiber/memdom"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

func newTable(w io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(w)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		tbl.SetStyle(table.StyleRounded)
	} else {
		tbl.SetStyle(table.StyleDefault)
	}
	return tbl
}

func renderOps(w io.Writer, title string, ops []memdom.Op) {
	tbl := newTable(w, title)
	tbl.AppendHeader(table.Row{"#", "op", "call"})
	for i, op := range ops {
		tbl.AppendRow(table.Row{i + 1, op.Kind.String(), op.String()})
	}
	if len(ops) == 0 {
		tbl.AppendRow(table.Row{"-", "-", "no target calls"})
	}
	tbl.Render()
}

func digestString(doc *memdom.Document) string {
	return fmt.Sprintf("%016x", doc.Digest())
}
