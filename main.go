/*
File   : opdef/main.go
This root-level main mirrors go-mix's own root main.go: a handful of
small hand-built programs run through the full pipeline and printed via
a visitor, with no CLI argument parsing. It exists as a quick manual
smoke test of the declaration -> resolve -> body pipeline, not as the
opdef entry point (see main/main.go for that).
*/
package main

import (
	"bytes"
	"fmt"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/declparser"
	"github.com/opdeflang/opdef/driver"
)

const indentSize = 4

// PrintingVisitor renders a resolved Body tree, mirroring go-mix's
// PrintingVisitor over its own AST nodes.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

func (p *PrintingVisitor) indent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

// Visit walks b, writing one line per node.
func (p *PrintingVisitor) Visit(b body.Body) {
	p.indent()
	switch b.Kind {
	case body.Numeric:
		p.Buf.WriteString(fmt.Sprintf("Numeric (%d)\n", b.Num))
	case body.VarRef:
		p.Buf.WriteString(fmt.Sprintf("VarRef (%s)\n", b.Name))
	case body.NullaryCall:
		p.Buf.WriteString(fmt.Sprintf("NullaryCall (%s)\n", b.Op))
	case body.UnaryCall:
		p.Buf.WriteString(fmt.Sprintf("UnaryCall (%s)\n", b.Op))
		p.Indent += indentSize
		p.Visit(*b.Left)
		p.Indent -= indentSize
	case body.BinaryCall:
		p.Buf.WriteString(fmt.Sprintf("BinaryCall (%s)\n", b.Op))
		p.Indent += indentSize
		p.Visit(*b.Left)
		p.Visit(*b.Right)
		p.Indent -= indentSize
	case body.PostPair:
		p.Buf.WriteString("Pair\n")
		p.Indent += indentSize
		p.Visit(*b.Left)
		p.Visit(*b.Right)
		p.Indent -= indentSize
	case body.Native:
		p.Buf.WriteString("Native\n")
	}
}

func (p *PrintingVisitor) String() string { return p.Buf.String() }

// runAndPrint loads src, capturing the resolved body of the named
// operator via the driver's OnOperatorDef hook, and prints it.
func runAndPrint(label, name, src string) {
	var captured *body.Body
	d := driver.New(".")
	d.OnOperatorDef = func(def *declparser.OperatorDef, resolved *body.Body) {
		if def.Name.Lexeme == name {
			captured = resolved
		}
	}
	if errs := d.Load(label, src); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
		return
	}
	if captured == nil {
		fmt.Printf("%s: no operator named %q was declared\n", label, name)
		return
	}
	v := &PrintingVisitor{}
	v.Visit(*captured)
	fmt.Printf("--- %s ---\n%s", label, v)
}

func main() {
	fmt.Println("Hello, opdef!")

	runAndPrint("literal", "main", "f 0 main\n  42")

	runAndPrint("binary priority", "main",
		"xfx 500 X plus Y\n  X\nxfx 400 X times Y\n  X\nf 0 main\n  1 plus 2 times 3")

	runAndPrint("prefix and postfix", "main",
		"fy 200 neg X\n  X\nyf 200 X squared\n  X\nf 0 main\n  neg 4 squared")

	runAndPrint("pair literal", "main", "f 0 main\n  {1, 2, 3}")
}
