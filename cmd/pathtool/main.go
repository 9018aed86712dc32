package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"pathworks/pkg/document"
	"pathworks/pkg/pathedit"
	"pathworks/pkg/pathfinder"
	"pathworks/pkg/svg"
)

func usage() {
	fmt.Printf(`usage: %s <operation> <in.svg> [args] [-o out.svg]

operations:
  unite | subtract | intersect | exclude | divide
        boolean-combine the path shapes of the first layer, in z order
  merge [max-distance]
        join open paths whose endpoints nearly touch
  simplify <tolerance>
        reduce anchor counts with Douglas-Peucker
  offset <distance>
        offset every path outward (negative for inward)

Without -o the result is written to stdout.
`, os.Args[0])
	os.Exit(2)
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	op := os.Args[1]
	input := os.Args[2]

	args, output := splitOutput(os.Args[3:])

	data, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("file read error: %s", err)
	}
	doc, err := svg.Parse(data)
	if err != nil {
		log.Fatalf("parse error: %s", err)
	}
	if len(doc.Layers) == 0 {
		log.Fatalf("%s contains no layers", input)
	}
	layer := doc.Layers[0]

	switch op {
	case "unite", "subtract", "intersect", "exclude", "divide":
		applyBoolean(layer, booleanOp(op))
	case "merge":
		maxDist := 0.0
		if len(args) > 0 {
			maxDist = number(args[0])
		}
		applyMerge(layer, maxDist)
	case "simplify":
		if len(args) < 1 {
			usage()
		}
		forEachPath(layer, func(el *document.PathElement) *document.PathElement {
			return pathedit.Simplify(el, number(args[0]))
		})
	case "offset":
		if len(args) < 1 {
			usage()
		}
		forEachPath(layer, func(el *document.PathElement) *document.PathElement {
			return pathedit.Offset(el, number(args[0]))
		})
	default:
		usage()
	}

	out := svg.Export(doc)
	if output == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		log.Fatalf("file write error: %s", err)
	}
}

func splitOutput(args []string) ([]string, string) {
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			rest := append([]string{}, args[:i]...)
			return append(rest, args[i+2:]...), args[i+1]
		}
	}
	return args, ""
}

func number(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("bad number %q: %s", s, err)
	}
	return val
}

func booleanOp(name string) pathfinder.Op {
	switch name {
	case "subtract":
		return pathfinder.Subtract
	case "intersect":
		return pathfinder.Intersect
	case "exclude":
		return pathfinder.Exclude
	case "divide":
		return pathfinder.Divide
	}
	return pathfinder.Unite
}

// applyBoolean combines every path-convertible element of the layer in z
// order and replaces them with the results.
func applyBoolean(layer *document.Layer, op pathfinder.Op) {
	var inputs []*document.PathElement
	var kept []document.Element
	for _, el := range layer.Elements {
		if p := el.AsPath(); p != nil {
			inputs = append(inputs, p)
		} else {
			kept = append(kept, el)
		}
	}
	if len(inputs) < 2 {
		return
	}
	for _, el := range pathfinder.Apply(op, inputs) {
		kept = append(kept, el)
	}
	layer.Elements = kept
}

func applyMerge(layer *document.Layer, maxDist float64) {
	var inputs []*document.PathElement
	var kept []document.Element
	for _, el := range layer.Elements {
		if p, ok := el.(*document.PathElement); ok {
			inputs = append(inputs, p)
		} else {
			kept = append(kept, el)
		}
	}
	for _, el := range pathedit.MergeNearby(inputs, maxDist) {
		kept = append(kept, el)
	}
	layer.Elements = kept
}

func forEachPath(layer *document.Layer, f func(*document.PathElement) *document.PathElement) {
	for i, el := range layer.Elements {
		p, ok := el.(*document.PathElement)
		if !ok {
			continue
		}
		if out := f(p); out != nil {
			layer.Elements[i] = out
		}
	}
}
