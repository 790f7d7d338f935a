package shadowing

// depthVertSrc/depthFragSrc render depth-only geometry for the directional
// and spot shadow maps, grounded on the reference renderer's depthVertSrc/depthFragSrc
// (internal/opengl/renderer.go) — OpenGL writes depth implicitly, so the
// fragment shader body is empty.
const depthVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

const depthFragSrc = `
#version 430 core
void main() {}
` + "\x00"

// depthSkinnedVertSrc is depthVertSrc with the reference renderer's skinning math
// (internal/opengl/renderer.go's vertSrc bone-palette blend) applied before
// the light transform, so animated casters still fit their cascade/spot
// light-space matrix instead of casting from their bind pose.
const depthSkinnedVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
layout(location = 6) in uvec4 inBoneIndices;
layout(location = 7) in vec4 inBoneWeights;

layout(std140, binding = 5) uniform SkinnedBlock {
    mat4 boneMatrices[100];
};

uniform mat4 lightMVP;

void main() {
    mat4 skin = boneMatrices[inBoneIndices.x] * inBoneWeights.x
              + boneMatrices[inBoneIndices.y] * inBoneWeights.y
              + boneMatrices[inBoneIndices.z] * inBoneWeights.z
              + boneMatrices[inBoneIndices.w] * inBoneWeights.w;
    gl_Position = lightMVP * skin * vec4(inPosition, 1.0);
}
` + "\x00"

// pointVertSrc/pointFragSrc write linear distance from the light into an
// R32F color attachment instead of relying on hardware depth: the lighting
// pass later compares raw distance, no PCF.
const pointVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
uniform mat4 model;
uniform mat4 lightViewProj;
out vec3 worldPos;
void main() {
    vec4 wp = model * vec4(inPosition, 1.0);
    worldPos = wp.xyz;
    gl_Position = lightViewProj * wp;
}
` + "\x00"

const pointFragSrc = `
#version 430 core
in vec3 worldPos;
uniform vec3 lightPos;
out float fragDistance;
void main() {
    fragDistance = length(worldPos - lightPos);
}
` + "\x00"
