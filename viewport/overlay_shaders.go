package viewport

// skyboxVertSrc/skyboxFragSrc draw the IBL environment cubemap as a
// backdrop, grounded on the reference renderer's internal/opengl/skybox.go
// skyVertSrc/skyFragSrc: the xyww trick forces every fragment to NDC depth
// 1.0 so OverlayPipelineState's LEQUAL depth test only lets the sky through
// where nothing in front of it has already written depth.
const skyboxVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;

uniform mat4 skyVP;

out vec3 fragDir;

void main() {
    fragDir = inPosition;
    vec4 pos = skyVP * vec4(inPosition, 1.0);
    gl_Position = pos.xyww;
}
` + "\x00"

const skyboxFragSrc = `
#version 430 core
in vec3 fragDir;
out vec4 outColor;

uniform samplerCube environmentMap;

void main() {
    outColor = vec4(texture(environmentMap, normalize(fragDir)).rgb, 1.0);
}
` + "\x00"

// unlitVertSrc/unlitFragSrc draw PathUnlit/PathTranslucent geometry (debug
// grids, AABB wireframes, billboards) with per-vertex color modulated by the
// bound material's albedo, alpha-blended against whatever the lighting pass
// already resolved. No lighting, no G-buffer write.
const unlitVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
layout(location = 5) in vec4 inColor;

uniform mat4 model;
uniform mat4 viewProj;

out vec4 fragColor;

void main() {
    fragColor = inColor;
    gl_Position = viewProj * model * vec4(inPosition, 1.0);
}
` + "\x00"

const unlitFragSrc = `
#version 430 core
in vec4 fragColor;
out vec4 outColor;

uniform vec4 albedo;

void main() {
    outColor = fragColor * albedo;
}
` + "\x00"
