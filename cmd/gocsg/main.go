// Command gocsg combines solids with boolean operations. Operands come from
// geometry files, inline shape expressions, or Lisp scripts; the result is
// written as an OFF document.
//
// Usage:
//
//	gocsg [flags] [file...]
//
//	gocsg -op subtract box.off drill.off -o part.off
//	gocsg -expr 'cube(size=1)' -expr 'sphere(radius=1.3)' -op intersect
//	gocsg -script model.zy -o model.off
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hasselmm/gocsg/pkg/csg"
	"github.com/hasselmm/gocsg/pkg/engine"
	"github.com/hasselmm/gocsg/pkg/expr"
	"github.com/hasselmm/gocsg/pkg/meshio"
)

// stringList collects repeated flag values.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint([]string(*l)) }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gocsg: ")

	var expressions stringList
	var scripts stringList

	op := flag.String("op", "union", "boolean operation: union, subtract or intersect")
	out := flag.String("o", "", "output file name; standard output when empty")
	flag.Var(&expressions, "expr", "shape expression operand, for example 'cube(size=2)'; repeatable")
	flag.Var(&scripts, "script", "Lisp script operand; repeatable")
	flag.Parse()

	combine, ok := operations[*op]
	if !ok {
		log.Fatalf("unknown operation %q", *op)
	}

	operands := collectOperands(flag.Args(), expressions, scripts)
	if len(operands) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	result := operands[0]
	for _, g := range operands[1:] {
		result = combine(result, g)
	}

	if err := result.Err(); err != csg.NoError {
		log.Fatalf("combining operands failed: %v", err)
	}

	if err := writeResult(*out, result); err != csg.NoError {
		log.Fatalf("writing result failed: %v", err)
	}
}

var operations = map[string]func(a, b csg.Geometry) csg.Geometry{
	"union":     csg.Merge,
	"subtract":  csg.Subtract,
	"intersect": csg.Intersect,
}

// collectOperands loads all operands in order: files first, then
// expressions, then scripts. Any failure aborts the program.
func collectOperands(files []string, expressions, scripts []string) []csg.Geometry {
	var operands []csg.Geometry

	for _, fileName := range files {
		g := meshio.ReadGeometry(fileName)
		if err := g.Err(); err != csg.NoError {
			log.Fatalf("reading %s failed: %v", fileName, err)
		}

		operands = append(operands, g)
	}

	for _, source := range expressions {
		g, err := expr.Parse(source)
		if err != nil {
			log.Fatalf("parsing expression failed: %v", err)
		}

		operands = append(operands, g)
	}

	if len(scripts) > 0 {
		eng := engine.NewEngine()

		for _, fileName := range scripts {
			source, err := os.ReadFile(fileName)
			if err != nil {
				log.Fatalf("reading %s failed: %v", fileName, err)
			}

			g, evalErrs, err := eng.Evaluate(string(source))
			if err != nil {
				log.Fatalf("evaluating %s failed: %v", fileName, err)
			}
			for _, evalErr := range evalErrs {
				log.Printf("%s: %v", fileName, evalErr)
			}
			if len(evalErrs) > 0 {
				os.Exit(1)
			}

			operands = append(operands, g)
		}
	}

	return operands
}

// writeResult stores the geometry in the named file, or streams it as OFF to
// standard output when no file name is given.
func writeResult(fileName string, g csg.Geometry) csg.Error {
	if fileName == "" {
		format := meshio.FormatFor("stdout.off")
		if format == nil {
			return csg.NotSupportedError
		}

		return format.Write(os.Stdout, g)
	}

	return meshio.WriteGeometry(fileName, g)
}
