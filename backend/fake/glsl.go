package fake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// glslTypes maps GLSL type names to the type constants a GL driver reports
// through introspection.
var glslTypes = map[string]uint32{
	"float": 0x1406, "vec2": 0x8B50, "vec3": 0x8B51, "vec4": 0x8B52,
	"int": 0x1404, "ivec2": 0x8B53, "ivec3": 0x8B54, "ivec4": 0x8B55,
	"uint": 0x1405, "uvec2": 0x8DC6, "uvec3": 0x8DC7, "uvec4": 0x8DC8,
	"bool": 0x8B56, "bvec2": 0x8B57, "bvec3": 0x8B58, "bvec4": 0x8B59,
	"double": 0x140A, "dvec2": 0x8FFC, "dvec3": 0x8FFD, "dvec4": 0x8FFE,

	"mat2": 0x8B5A, "mat3": 0x8B5B, "mat4": 0x8B5C,
	"mat2x2": 0x8B5A, "mat3x3": 0x8B5B, "mat4x4": 0x8B5C,
	"mat2x3": 0x8B65, "mat2x4": 0x8B66, "mat3x2": 0x8B67,
	"mat3x4": 0x8B68, "mat4x2": 0x8B69, "mat4x3": 0x8B6A,

	"dmat2": 0x8F46, "dmat3": 0x8F47, "dmat4": 0x8F48,
	"dmat2x2": 0x8F46, "dmat3x3": 0x8F47, "dmat4x4": 0x8F48,
	"dmat2x3": 0x8F49, "dmat2x4": 0x8F4A, "dmat3x2": 0x8F4B,
	"dmat3x4": 0x8F4C, "dmat4x2": 0x8F4D, "dmat4x3": 0x8F4E,

	"sampler1D": 0x8B5D, "sampler2D": 0x8B5E, "sampler3D": 0x8B5F,
	"samplerCube": 0x8B60, "sampler1DShadow": 0x8B61, "sampler2DShadow": 0x8B62,
	"sampler2DRect": 0x8B63, "sampler2DRectShadow": 0x8B64,
	"sampler1DArray": 0x8DC0, "sampler2DArray": 0x8DC1, "samplerBuffer": 0x8DC2,
	"sampler1DArrayShadow": 0x8DC3, "sampler2DArrayShadow": 0x8DC4,
	"samplerCubeShadow": 0x8DC5, "sampler2DMS": 0x9108, "sampler2DMSArray": 0x910B,
}

// variable is one declared uniform or vertex input.
type variable struct {
	name     string
	typ      uint32
	size     int32
	location int32 // -1 until assigned
	builtin  bool  // active but without a location
}

// locations returns how many consecutive locations v occupies.
func (v variable) locations() int32 { return max(v.size, 1) }

var (
	declPattern = regexp.MustCompile(
		`(?m)^[ \t]*(?:layout[ \t]*\(([^)]*)\)[ \t]*)?(uniform|in|attribute)[ \t]+` +
			`(?:(?:lowp|mediump|highp|flat|smooth)[ \t]+)*(\w+)[ \t]+(\w+)[ \t]*(?:\[[ \t]*(\d+)[ \t]*\])?[ \t]*;`)
	locationPattern = regexp.MustCompile(`location[ \t]*=[ \t]*(\d+)`)
	errorPattern    = regexp.MustCompile(`(?m)^[ \t]*#error[ \t]*(.*)$`)
	builtinPattern  = regexp.MustCompile(`\bgl_(?:VertexID|InstanceID)\b`)
)

// declarations is what a compile pass extracts from a GLSL source.
type declarations struct {
	uniforms []variable
	inputs   []variable
}

// scan extracts uniform and input declarations from src. It returns a
// compiler-style log when the source cannot be accepted: an #error
// directive or a declaration of an unknown type.
func scan(src string) (declarations, string) {
	if m := errorPattern.FindStringSubmatchIndex(src); m != nil {
		line := strings.Count(src[:m[0]], "\n") + 1
		return declarations{}, fmt.Sprintf("0:%d(1): error: %s", line, strings.TrimSpace(src[m[2]:m[3]]))
	}

	var out declarations
	for _, m := range declPattern.FindAllStringSubmatch(src, -1) {
		layout, qualifier, typeName, name, count := m[1], m[2], m[3], m[4], m[5]
		typ, ok := glslTypes[typeName]
		if !ok {
			return declarations{}, fmt.Sprintf("0:0(0): error: %s `%s' has unknown type `%s'", qualifier, name, typeName)
		}
		v := variable{name: name, typ: typ, size: 1, location: -1}
		if count != "" {
			n, err := strconv.Atoi(count)
			if err != nil || n < 1 {
				return declarations{}, fmt.Sprintf("0:0(0): error: array `%s' has invalid size", name)
			}
			v.size = int32(n)
		}
		if lm := locationPattern.FindStringSubmatch(layout); lm != nil {
			loc, _ := strconv.Atoi(lm[1])
			v.location = int32(loc)
		}
		if qualifier == "uniform" {
			out.uniforms = append(out.uniforms, v)
		} else {
			out.inputs = append(out.inputs, v)
		}
	}
	// Drivers report the built-in inputs a shader reads as active
	// attributes with location -1.
	seen := make(map[string]bool)
	for _, name := range builtinPattern.FindAllString(src, -1) {
		if !seen[name] {
			seen[name] = true
			out.inputs = append(out.inputs, variable{name: name, typ: glslTypes["int"], size: 1, location: -1, builtin: true})
		}
	}
	return out, ""
}

// assignLocations gives every variable without an explicit location the
// lowest run of free locations it fits in. Explicit locations are kept.
func assignLocations(vars []variable) {
	used := make(map[int32]bool)
	for _, v := range vars {
		if v.builtin {
			continue
		}
		if v.location >= 0 {
			for i := range v.locations() {
				used[v.location+i] = true
			}
		}
	}
	for i := range vars {
		if vars[i].builtin || vars[i].location >= 0 {
			continue
		}
		n := vars[i].locations()
		loc := int32(0)
		for !free(used, loc, n) {
			loc++
		}
		vars[i].location = loc
		for j := range n {
			used[loc+j] = true
		}
	}
}

func free(used map[int32]bool, loc, n int32) bool {
	for i := range n {
		if used[loc+i] {
			return false
		}
	}
	return true
}

// resolve finds the location of name among vars. Array elements can be
// addressed as "name[k]"; "name" and "name[0]" address the first element.
func resolve(vars []variable, name string) int32 {
	base, index := name, 0
	if strings.HasSuffix(name, "]") {
		if open := strings.LastIndexByte(name, '['); open > 0 {
			k, err := strconv.Atoi(name[open+1 : len(name)-1])
			if err != nil || k < 0 {
				return -1
			}
			base, index = name[:open], k
		}
	}
	for _, v := range vars {
		if v.name != base {
			continue
		}
		if v.builtin {
			return -1
		}
		if int32(index) >= v.locations() {
			return -1
		}
		return v.location + int32(index)
	}
	return -1
}

// activeName is the name introspection reports: arrays carry "[0]".
func (v variable) activeName() string {
	if v.size > 1 {
		return v.name + "[0]"
	}
	return v.name
}
