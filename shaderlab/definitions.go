// Package shaderlab holds the schema of the ShaderLab declaration language:
// which blocks exist, which blocks may appear inside which, and the
// descriptions and snippets offered to editors.
package shaderlab

import (
	"slices"
	"sync"

	"github.com/dhamidi/shaderlab/syntax"
)

// Definition keys.
const (
	Root                    = "root"
	ShaderDeclaration       = "shaderDeclaration"
	PropertyListDeclaration = "propertyListDeclaration"
	Property                = "property"
	SubShaderDeclaration    = "subShaderDeclaration"
	CategoryDeclaration     = "categoryDeclaration"
	PassDeclaration         = "passDeclaration"
	GrabPassDeclaration     = "grabPassDeclaration"
	TagsDeclaration         = "tagsDeclaration"
	Tag                     = "tag"
	MaterialDeclaration     = "materialDeclaration"
	FogDeclaration          = "fogDeclaration"
	StencilDeclaration      = "stencilDeclaration"
	BindChannelsDeclaration = "bindChannelsDeclaration"
	SetTextureDeclaration   = "setTextureDeclaration"
	CgProgram               = "cgProgram"
	CgInclude               = "cgInclude"
	HLSLProgram             = "hlslProgram"
	HLSLInclude             = "hlslInclude"
	GLSLProgram             = "glslProgram"
	ProgramContent          = "programContent"
)

const manual = "https://docs.unity3d.com/Manual/"

func keys(k ...string) func() []string {
	return func() []string { return k }
}

var (
	// modifiers may appear in SubShader, Category and Pass bodies.
	modifiers = []string{TagsDeclaration, FogDeclaration, StencilDeclaration, MaterialDeclaration}

	// programs are the embedded shader program blocks.
	programs = []string{CgProgram, HLSLProgram, GLSLProgram}
	includes = []string{CgInclude, HLSLInclude}
)

func concat(lists ...[]string) func() []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return keys(all...)
}

func block(id, keyword string, arity syntax.Arity, children func() []string, description string) *syntax.Definition {
	return &syntax.Definition{
		ID:          id,
		Keyword:     keyword,
		Identifier:  arity,
		Strategy:    syntax.StrategyBlock,
		Children:    children,
		Description: description,
		Suggest:     syntax.SuggestKeyword,
	}
}

func program(id, start, end, description string) *syntax.Definition {
	return &syntax.Definition{
		ID:          id,
		Keyword:     start,
		EndKeyword:  end,
		Strategy:    syntax.StrategyKeywordPair,
		Children:    keys(ProgramContent),
		Description: description,
		Suggest:     syntax.SuggestKeyword | syntax.SuggestEndKeyword,
	}
}

func definitions() []*syntax.Definition {
	return []*syntax.Definition{
		{
			ID:       Root,
			Strategy: syntax.StrategyRoot,
			Children: keys(ShaderDeclaration),
		},
		block(ShaderDeclaration, "Shader", syntax.ArityOne,
			concat([]string{PropertyListDeclaration, SubShaderDeclaration, CategoryDeclaration}, includes),
			shaderDescription),
		block(PropertyListDeclaration, "Properties", syntax.ArityNone,
			keys(Property),
			propertiesDescription),
		{
			ID:          Property,
			Strategy:    syntax.StrategyOpaque,
			Description: propertyDescription,
			Snippets:    propertySnippets,
		},
		block(SubShaderDeclaration, "SubShader", syntax.ArityNone,
			concat([]string{PassDeclaration, GrabPassDeclaration}, modifiers, programs, includes),
			subShaderDescription),
		block(CategoryDeclaration, "Category", syntax.ArityNone,
			concat([]string{SubShaderDeclaration, CategoryDeclaration}, modifiers),
			categoryDescription),
		block(PassDeclaration, "Pass", syntax.ArityNone,
			concat(modifiers, []string{BindChannelsDeclaration, SetTextureDeclaration}, programs, includes),
			passDescription),
		block(GrabPassDeclaration, "GrabPass", syntax.ArityNone,
			keys(TagsDeclaration),
			grabPassDescription),
		block(TagsDeclaration, "Tags", syntax.ArityNone,
			keys(Tag),
			tagsDescription),
		{
			ID:          Tag,
			Strategy:    syntax.StrategyOpaque,
			Description: tagDescription,
			Snippets:    tagSnippets,
		},
		block(MaterialDeclaration, "Material", syntax.ArityNone, nil, materialDescription),
		block(FogDeclaration, "Fog", syntax.ArityNone, nil, fogDescription),
		block(StencilDeclaration, "Stencil", syntax.ArityNone, nil, stencilDescription),
		block(BindChannelsDeclaration, "BindChannels", syntax.ArityNone, nil, bindChannelsDescription),
		block(SetTextureDeclaration, "SetTexture", syntax.ArityOne, nil, setTextureDescription),
		program(CgProgram, "CGPROGRAM", "ENDCG", cgProgramDescription),
		program(CgInclude, "CGINCLUDE", "ENDCG", cgIncludeDescription),
		program(HLSLProgram, "HLSLPROGRAM", "ENDHLSL", hlslProgramDescription),
		program(HLSLInclude, "HLSLINCLUDE", "ENDHLSL", hlslIncludeDescription),
		program(GLSLProgram, "GLSLPROGRAM", "ENDGLSL", glslProgramDescription),
		{
			ID:       ProgramContent,
			Strategy: syntax.StrategyOpaque,
		},
	}
}

// Registry returns the ShaderLab schema. It is built on first use and shared
// read-only afterwards.
var Registry = sync.OnceValue(func() *syntax.Registry {
	return syntax.MustRegistry(Root, definitions()...)
})

// Parse parses a ShaderLab document.
func Parse(text string) *syntax.Node {
	return syntax.Parse(text, Registry())
}

// IsProgram reports whether d is a compiled program block.
func IsProgram(d *syntax.Definition) bool {
	return slices.Contains(programs, d.ID)
}

// IsInclude reports whether d is a block whose content is shared by every
// program block of the enclosing declaration.
func IsInclude(d *syntax.Definition) bool {
	return slices.Contains(includes, d.ID)
}

// IsHLSL reports whether the content of d is HLSL or CG, the languages the
// DirectX compiler accepts.
func IsHLSL(d *syntax.Definition) bool {
	switch d.ID {
	case CgProgram, CgInclude, HLSLProgram, HLSLInclude:
		return true
	}
	return false
}

// IncludeOf returns the key of the include block whose content is visible
// to program blocks of kind d, or "" when there is none.
func IncludeOf(d *syntax.Definition) string {
	switch d.ID {
	case CgProgram:
		return CgInclude
	case HLSLProgram:
		return HLSLInclude
	}
	return ""
}
