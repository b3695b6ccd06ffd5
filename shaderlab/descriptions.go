package shaderlab

import (
	"github.com/dhamidi/shaderlab/format"
	"github.com/dhamidi/shaderlab/syntax"
)

var shaderDescription = format.Pre("Shader") + ` is the root command of a shader file. Each file must define one (and only one) Shader.
It specifies how any objects whose material uses this shader are rendered.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", `Shader "name" { [Properties] Subshaders [Fallback] [CustomEditor] }`) + `
Defines a shader. It will appear in the material inspector listed under name.
Shaders optionally can define a list of properties that show up in the material inspector.
After this comes a list of SubShaders, and optionally a fallback and/or a custom editor declaration.
`

var propertiesDescription = `Shaders can define a list of parameters to be set by artists in Unity's ` +
	format.Link("material inspector", manual+"Materials.html") + `.
The ` + format.Pre("Properties") + ` block in the ` + format.Link("shader file", manual+"SL-Shader.html") + ` defines them.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", "Properties { Property [Property ...] }") + `
Defines the property block.
`

var propertyDescription = `Inside braces multiple properties are defined as follows.

` + format.Heading("Numbers and Sliders") + `
` + format.Code("shaderlab", `name ("display name", Range (min, max)) = number`) +
	format.Code("shaderlab", `name ("display name", Float) = number`) +
	format.Code("shaderlab", `name ("display name", Int) = number`) + `
These all define a number (scalar) property with a default value. The Range form makes it be displayed as a slider between min and max ranges.

` + format.Heading("Colors and Vectors") + `
` + format.Code("shaderlab", `name ("display name", Color) = (number,number,number,number)`) +
	format.Code("shaderlab", `name ("display name", Vector) = (number,number,number,number)`) + `
Defines a color property with default value of given RGBA components, or a 4D vector property with a default value.
Color properties have a color picker shown for them, and are adjusted as needed depending on the color space (see ` +
	format.Link("Properties in Shader Programs", manual+"SL-PropertiesInPrograms.html") + `).
Vector properties are displayed as four number fields.

` + format.Heading("Textures") + `
` + format.Code("shaderlab", `name ("display name", 2D) = "defaulttexture" {}`) +
	format.Code("shaderlab", `name ("display name", Cube) = "defaulttexture" {}`) +
	format.Code("shaderlab", `name ("display name", 3D) = "defaulttexture" {}`) + `
Defines a 2D texture, cubemap or 3D (volume) property respectively.
`

var propertySnippets = []syntax.Snippet{
	{
		Value:       `_IntProperty ("Integer", Int) = 0`,
		Display:     "_IntProperty",
		Description: "Integer Property",
	},
	{
		Value:       `_FloatProperty ("Float", Float) = 0.0`,
		Display:     "_FloatProperty",
		Description: "Float Property",
	},
	{
		Value:       `_RangeProperty ("Range", Range (0, 1)) = 0.5`,
		Display:     "_RangeProperty",
		Description: "Range Property",
	},
	{
		Value:       `_ColorProperty ("Color", Color) = (0,0,0,0)`,
		Display:     "_ColorProperty",
		Description: "Color Property",
	},
	{
		Value:       `_VectorProperty ("Vector", Vector) = (0,0,0,0)`,
		Display:     "_VectorProperty",
		Description: "Vector Property",
	},
	{
		Value:       `_TexProperty ("Texture", 2D) = "defaulttexture" {}`,
		Display:     "_TexProperty",
		Description: "Texture Property",
	},
}

var subShaderDescription = `Each shader is made up of a list of sub-shaders. When loading a shader, Unity goes through the list of subshaders
and picks the first one that is supported by the end user's machine.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", "SubShader { [Tags] [CommonState] Passdef [Passdef ...] }") + `
Defines a subshader as optional tags, common state and a list of pass definitions.
See ` + format.Link("SubShader", manual+"SL-SubShader.html") + `.
`

var categoryDescription = format.Pre("Category") + ` is a logical grouping of any commands below it.
It is mostly used to inherit rendering state: a shader can have multiple subshaders that all set the same fog and blending.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", "Category { [CommonState] SubShader [SubShader ...] }") + `
See ` + format.Link("Category", manual+"SL-Other.html") + `.
`

var passDescription = `The ` + format.Pre("Pass") + ` block causes the geometry of a GameObject to be rendered once.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", "Pass { [Name and Tags] [RenderSetup] }") + `
The basic pass command contains an optional list of render state setup commands.
See ` + format.Link("Pass", manual+"SL-Pass.html") + `.
`

var grabPassDescription = format.Pre("GrabPass") + ` is a special pass type that grabs the contents of the screen where the object
is about to be drawn into a texture.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", `GrabPass { "TextureName" }`) + `
See ` + format.Link("GrabPass", manual+"SL-GrabPass.html") + `.
`

var tagsDescription = `Subshaders and passes use tags to tell how and when they expect to be rendered to the rendering engine.

` + format.Heading("Syntax") + `
` + format.Code("shaderlab", `Tags { "TagName1" = "Value1" "TagName2" = "Value2" }`) + `
Specifies TagName1 to have Value1, TagName2 to have Value2. You can have as many tags as you like.
See ` + format.Link("SubShader Tags", manual+"SL-SubShaderTags.html") + `.
`

var tagDescription = `A tag is a key/value pair of quoted strings.

` + format.Code("shaderlab", `"TagName" = "Value"`)

var tagSnippets = []syntax.Snippet{
	{
		Value:       `"Queue" = "Geometry"`,
		Display:     "Queue",
		Description: "Render queue the subshader belongs to",
	},
	{
		Value:       `"RenderType" = "Opaque"`,
		Display:     "RenderType",
		Description: "Category used by shader replacement",
	},
	{
		Value:       `"IgnoreProjector" = "True"`,
		Display:     "IgnoreProjector",
		Description: "Exclude the object from projectors",
	},
	{
		Value:       `"LightMode" = "ForwardBase"`,
		Display:     "LightMode",
		Description: "Role of the pass in the lighting pipeline",
	},
}

var materialDescription = `Legacy fixed function material settings used for per-vertex lighting.

` + format.Code("shaderlab", "Material { Diffuse [_Color] Ambient [_Color] }")

var fogDescription = `Fixed function fog parameters.

` + format.Code("shaderlab", "Fog { Mode Off }")

var stencilDescription = `Configures the stencil buffer test and operations for the pass.

` + format.Code("shaderlab", "Stencil { Ref 2 Comp Always Pass Replace }") + `
See ` + format.Link("Stencil", manual+"SL-Stencil.html") + `.
`

var bindChannelsDescription = `Maps vertex data in a mesh to the legacy fixed function vertex inputs.

` + format.Code("shaderlab", "BindChannels { Bind \"Vertex\", vertex Bind \"texcoord\", texcoord }")

var setTextureDescription = `Legacy fixed function texture combiner stage. The identifier names the texture property.

` + format.Code("shaderlab", "SetTexture [_MainTex] { combine texture * primary }")

var cgProgramDescription = `A shader program written in Cg/HLSL, compiled for each pass.

` + format.Code("shaderlab", "CGPROGRAM #pragma vertex vert ... ENDCG") + `
See ` + format.Link("Shader programs", manual+"SL-ShaderPrograms.html") + `.
`

var cgIncludeDescription = `Cg/HLSL code shared by every program block that follows in the same shader.

` + format.Code("shaderlab", "CGINCLUDE ... ENDCG")

var hlslProgramDescription = `A shader program written in HLSL, without the built-in Cg includes.

` + format.Code("shaderlab", "HLSLPROGRAM #pragma vertex vert ... ENDHLSL")

var hlslIncludeDescription = `HLSL code shared by every program block that follows in the same shader.

` + format.Code("shaderlab", "HLSLINCLUDE ... ENDHLSL")

var glslProgramDescription = `A shader program written directly in GLSL. Only supported on OpenGL platforms.

` + format.Code("shaderlab", "GLSLPROGRAM ... ENDGLSL")
