package lint

import (
	"regexp"
	"strings"
)

// inputsDirective matches "// INPUTS(type): a, b" comments that declare
// symbols the surrounding engine provides to a program.
var inputsDirective = regexp.MustCompile(`//\s*INPUTS(?:\((\w+)\))?:\s*([^\n]+)\s*\n`)

var symbolSeparator = regexp.MustCompile(`\s*,\s*`)

var typeConstructors = map[string]string{
	"float":  "0.0",
	"float2": "float2(0, 0)",
	"float3": "float3(0, 0, 0)",
	"float4": "float4(0, 0, 0, 0)",
	"int":    "0",
	"int2":   "int2(0, 0)",
	"int3":   "int3(0, 0, 0)",
	"int4":   "int4(0, 0, 0, 0)",
}

// inputs is what the INPUTS directives of one program ask for: macro
// definitions for types with a constructor, declarations for the rest.
type inputs struct {
	defines      []string
	declarations []string
}

// parseInputs collects the INPUTS directives of text. The type defaults to
// float and the first declaration of a symbol wins.
func parseInputs(text string) inputs {
	var in inputs
	seen := make(map[string]bool)
	for _, m := range inputsDirective.FindAllStringSubmatch(text, -1) {
		typeName := m[1]
		if typeName == "" {
			typeName = "float"
		}
		for _, symbol := range symbolSeparator.Split(strings.TrimSpace(m[2]), -1) {
			symbol = strings.TrimSpace(symbol)
			if symbol == "" || seen[symbol] {
				continue
			}
			seen[symbol] = true
			if ctor, ok := typeConstructors[typeName]; ok {
				in.defines = append(in.defines, symbol+"="+ctor)
			} else {
				in.declarations = append(in.declarations, typeName+" "+symbol+";")
			}
		}
	}
	return in
}
