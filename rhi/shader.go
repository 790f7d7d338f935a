package rhi

import (
	"strings"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
)

// PipelineState is recorded once at shader creation and re-applied on every
// UseShader: authoring a material is a state decision, not a call-site
// decision. Grounded on the reference renderer's ad-hoc
// gl.Enable(gl.DEPTH_TEST)/gl.Enable(gl.CULL_FACE) calls scattered through
// BeginFrame/DrawMesh, collapsed into one struct so each shader program
// owns its own state instead of the call site having to remember it.
type PipelineState struct {
	DepthTest  bool
	DepthFunc  uint32
	DepthWrite bool

	BlendEnable    bool
	BlendSrcFactor uint32
	BlendDstFactor uint32
	BlendEquation  uint32

	CullEnable bool
	CullFace   uint32
	FrontFace  uint32
}

func DefaultPipelineState() PipelineState {
	return PipelineState{
		DepthTest:  true,
		DepthFunc:  gl.LESS,
		DepthWrite: true,
		CullEnable: true,
		CullFace:   gl.BACK,
		FrontFace:  gl.CCW,
	}
}

// OverlayPipelineState is the skybox state: depth test on with the xyww
// far-plane trick's LEQUAL function, depth writes off so the sky never
// occludes itself or leaves a stale 1.0 in the depth buffer, cull off (the
// cube is drawn from the inside).
func OverlayPipelineState() PipelineState {
	return PipelineState{
		DepthTest: true,
		DepthFunc: gl.LEQUAL,
	}
}

// BlendPipelineState is the translucent/unlit forward-overlay state:
// standard alpha blending, depth test on against the G-buffer's depth
// attachment shared with the forward target, depth write off so
// overlapping translucent draws don't occlude each other.
func BlendPipelineState() PipelineState {
	return PipelineState{
		DepthTest:      true,
		DepthFunc:      gl.LESS,
		BlendEnable:    true,
		BlendSrcFactor: gl.SRC_ALPHA,
		BlendDstFactor: gl.ONE_MINUS_SRC_ALPHA,
		BlendEquation:  gl.FUNC_ADD,
	}
}

// compileShader expects src to be a null-terminated GLSL source string
// (every source constant in this codebase ends with "\x00", a long-standing
// convention here), the same contract gl.Strs requires.
func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(logStr))
		gl.DeleteShader(shader)
		return 0, fatalf("compile shader: %s", logStr)
	}
	return shader, nil
}

func linkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(logStr))
		gl.DeleteProgram(prog)
		return 0, fatalf("link program: %s", logStr)
	}
	for _, s := range shaders {
		gl.DeleteShader(s)
	}
	return prog, nil
}

// CreateShaderProgram compiles and links a vertex+fragment program under
// the given pipeline state. On compile/link failure the error is logged and
// a zero handle is returned — by convention, shader failures are asset
// errors, never fatal to the device itself, but the caller still gets
// ErrFatal wrapped in the error since the specific program is unusable.
func (d *Device) CreateShaderProgram(vertSrc, fragSrc string, state PipelineState) (resource.Handle, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		logAsset("vertex shader: %v", err)
		return resource.Handle{}, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		logAsset("fragment shader: %v", err)
		return resource.Handle{}, err
	}
	id, err := linkProgram(vert, frag)
	if err != nil {
		logAsset("program link: %v", err)
		return resource.Handle{}, err
	}
	return d.programs.Insert(gpuProgram{id: id, state: state, uniforms: map[string]*uniformSlot{}, warned: map[string]bool{}}), nil
}

// CreateShaderProgramGeom compiles a vertex+geometry+fragment program.
// Nothing in this tree calls it: shadowing.Manager renders the six
// point-shadow cube faces in six separate passes.
func (d *Device) CreateShaderProgramGeom(vertSrc, geomSrc, fragSrc string, state PipelineState) (resource.Handle, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return resource.Handle{}, err
	}
	geom, err := compileShader(geomSrc, gl.GEOMETRY_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return resource.Handle{}, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		gl.DeleteShader(geom)
		return resource.Handle{}, err
	}
	id, err := linkProgram(vert, geom, frag)
	if err != nil {
		return resource.Handle{}, err
	}
	return d.programs.Insert(gpuProgram{id: id, state: state, uniforms: map[string]*uniformSlot{}, warned: map[string]bool{}}), nil
}

// CreateComputeProgram compiles and links a standalone compute shader, used
// by the bloom pass's threshold/downsample/upsample dispatches.
func (d *Device) CreateComputeProgram(src string) (resource.Handle, error) {
	cs, err := compileShader(src, gl.COMPUTE_SHADER)
	if err != nil {
		logAsset("compute shader: %v", err)
		return resource.Handle{}, err
	}
	id, err := linkProgram(cs)
	if err != nil {
		logAsset("compute program link: %v", err)
		return resource.Handle{}, err
	}
	return d.programs.Insert(gpuProgram{id: id, compute: true, uniforms: map[string]*uniformSlot{}, warned: map[string]bool{}}), nil
}

// UseShader binds the program and re-applies its recorded pipeline state.
func (d *Device) UseShader(h resource.Handle) bool {
	p, ok := d.programs.Lookup(h)
	if !ok {
		logAsset("UseShader: invalid handle %s", h)
		return false
	}
	gl.UseProgram(p.id)
	d.boundProgram = h
	applyPipelineState(p.state)
	return true
}

// UnuseShader resets blend and cull to "off"; depth state is left as the
// shader dictated, by convention.
func (d *Device) UnuseShader() {
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(0)
	d.boundProgram = resource.Handle{}
}

func applyPipelineState(s PipelineState) {
	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(s.DepthFunc)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.DepthWrite)

	if s.BlendEnable {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(s.BlendSrcFactor, s.BlendDstFactor)
		gl.BlendEquation(s.BlendEquation)
	} else {
		gl.Disable(gl.BLEND)
	}

	if s.CullEnable {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(s.CullFace)
		gl.FrontFace(s.FrontFace)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// DestroyProgram deletes a shader program's GL object.
func (d *Device) DestroyProgram(h resource.Handle) {
	p, ok := d.programs.Lookup(h)
	if !ok {
		return
	}
	if gl.IsProgram(p.id) {
		gl.DeleteProgram(p.id)
	}
	d.programs.Release(h)
}
