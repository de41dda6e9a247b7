// Package primitives draws physics3d bodies as lit raylib meshes. Draw calls are queued while
// scenes update and replayed by Flush inside BeginMode3D.
package primitives

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/render"
)

const (
	sphereRings  = 16
	sphereSlices = 16
)

var (
	ambient          = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor       = [3]float32{1.0, 0.98, 0.95}
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

type item struct {
	kind  string
	model mgl32.Mat4
	color color.RGBA
}

// Registry is a render.MeshSink backed by raylib. Meshes are created on first Flush so GPU
// resources are allocated after the window exists.
type Registry struct {
	cache  map[string]cached
	shader rl.Shader
	queue  []item
}

var _ render.MeshSink = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]cached)}
}

// DrawMesh queues one mesh. Spheres use a unit-radius mesh and cubes a unit cube, so size
// scales them directly.
func (r *Registry) DrawMesh(kind string, transform mgl32.Mat4, size mgl32.Vec3, c color.RGBA) {
	model := transform.Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
	r.queue = append(r.queue, item{kind: kind, model: model, color: c})
}

// Pending returns the number of queued draws.
func (r *Registry) Pending() int { return len(r.queue) }

// Flush draws and clears the queue. Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Flush(viewPos, lightDir mgl32.Vec3) {
	if len(r.queue) == 0 {
		return
	}
	r.setUniforms(viewPos, lightDir)
	for _, it := range r.queue {
		c, ok := r.ensure(it.kind)
		if !ok {
			continue
		}
		if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rl.NewColor(it.color.R, it.color.G, it.color.B, it.color.A)
		}
		rl.DrawMesh(c.mesh, c.mtl, toMatrix(it.model))
	}
	r.queue = r.queue[:0]
}

// Discard drops queued draws without drawing them.
func (r *Registry) Discard() { r.queue = r.queue[:0] }

// Unload releases every cached mesh and the shared shader.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, k)
	}
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.shader = rl.Shader{}
}

func (r *Registry) ensure(kind string) (cached, bool) {
	if c, ok := r.cache[kind]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch kind {
	case render.MeshSphere:
		mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case render.MeshCube:
		mesh = rl.GenMeshCube(1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.litShader()) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[kind] = c
	return c, true
}

func (r *Registry) litShader() rl.Shader {
	if !rl.IsShaderValid(r.shader) {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	}
	return r.shader
}

func (r *Registry) setUniforms(viewPos, lightDir mgl32.Vec3) {
	shader := r.litShader()
	if !rl.IsShaderValid(shader) {
		return
	}
	vp := [3]float32{viewPos.X(), viewPos.Y(), viewPos.Z()}
	ld := [3]float32{lightDir.X(), lightDir.Y(), lightDir.Z()}
	amb := ambient
	lc := lightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, vp[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, ld[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lc[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Directional light + ambient + Blinn specular. Attributes match raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)
