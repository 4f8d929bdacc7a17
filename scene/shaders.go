package scene

// Shaders for the per-vertex colour scene.
const (
	vertexColorVertexShader = `attribute vec4 a_Position;
attribute vec4 a_Color;
varying vec4 v_Color;

void main() {
	gl_Position = a_Position;
	gl_PointSize = 0.69;
	v_Color = a_Color;
}`

	vertexColorFragmentShader = `precision mediump float;
varying vec4 v_Color;

void main() {
	gl_FragColor = v_Color;
}`
)

// Shaders for geometry drawn in one uniform colour under a composed matrix.
const (
	solidVertexShader = `attribute vec4 a_Position;
uniform mat4 u_Matrix;

void main() {
	gl_Position = u_Matrix * a_Position;
	gl_PointSize = 5.0;
}`

	solidFragmentShader = `precision mediump float;
uniform vec4 u_Color;

void main() {
	gl_FragColor = u_Color;
}`
)

// Shaders for the cube-mapped box.  The cube vertices double as the cube
// map lookup direction.
const (
	cubeVertexShader = `attribute vec4 a_Position;
uniform mat4 u_Matrix;
varying vec3 v_Position;

void main() {
	v_Position = a_Position.xyz;
	gl_Position = u_Matrix * a_Position;
}`

	cubeFragmentShader = `precision mediump float;
uniform samplerCube u_TextureUnit;
varying vec3 v_Position;

void main() {
	gl_FragColor = textureCube(u_TextureUnit, v_Position);
}`
)
