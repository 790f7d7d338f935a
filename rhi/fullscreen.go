package rhi

import gl "github.com/go-gl/gl/v4.3-core/gl"

// DrawFullscreenTriangle issues the reference renderer's gl_VertexID fullscreen-triangle
// trick (internal/opengl/postprocess.go's ppVertSrc): one oversized triangle
// covering the whole clip-space rect, no VBO needed, just an empty bound
// VAO. Used by tonemap, the BRDF LUT bake, and any other single full-screen
// fragment pass.
func (d *Device) DrawFullscreenTriangle() {
	if d.fullscreenVAO == 0 {
		gl.GenVertexArrays(1, &d.fullscreenVAO)
	}
	gl.BindVertexArray(d.fullscreenVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}
