package bloom

// thresholdCompute extracts pixels above a luminance threshold into mip 0
// of the bloom chain, the compute-dispatch equivalent of the reference renderer's
// ppBrightFragSrc (internal/opengl/postprocess.go) fragment-shader bright
// pass.
const thresholdCompute = `
#version 430 core
layout(local_size_x = 8, local_size_y = 8) in;

layout(binding = 0) uniform sampler2D hdrColor;
layout(rgba32f, binding = 0) uniform writeonly image2D outImage;

uniform float threshold;
uniform ivec2 outputSize;

void main() {
    ivec2 coord = ivec2(gl_GlobalInvocationID.xy);
    if (coord.x >= outputSize.x || coord.y >= outputSize.y) {
        return;
    }
    vec2 uv = (vec2(coord) + 0.5) / vec2(outputSize);
    vec3 color = texture(hdrColor, uv).rgb;
    float luma = dot(color, vec3(0.2126, 0.7152, 0.0722));
    float knee = threshold * 0.5;
    float soft = clamp(luma - threshold + knee, 0.0, 2.0 * knee);
    soft = soft * soft / (4.0 * knee + 1e-5);
    float contribution = max(soft, luma - threshold) / max(luma, 1e-5);
    imageStore(outImage, coord, vec4(color * clamp(contribution, 0.0, 1.0), 1.0));
}
` + "\x00"

// downsampleCompute implements the 13-tap filter from Jorge Jimenez's "Next
// Generation Post Processing in Call of Duty: Advanced Warfare" — a box of
// four overlapping 2x2 taps plus the center and corners, weighted to
// suppress fireflies better than a plain bilinear downsample. Grounded in
// the explicit call-out of that filter; the reference renderer's own
// separable-Gaussian blur (ppBlurFragSrc) doesn't attempt firefly
// suppression, so this is a deliberate upgrade for the mip chain rather than
// a straight transcription of a simpler blur.
const downsampleCompute = `
#version 430 core
layout(local_size_x = 8, local_size_y = 8) in;

layout(binding = 0) uniform sampler2D srcColor;
layout(rgba32f, binding = 0) uniform writeonly image2D outImage;

uniform vec2 srcTexelSize;
uniform ivec2 outputSize;
uniform int srcMip;

vec3 sampleSrc(vec2 uv) {
    return textureLod(srcColor, uv, float(srcMip)).rgb;
}

void main() {
    ivec2 coord = ivec2(gl_GlobalInvocationID.xy);
    if (coord.x >= outputSize.x || coord.y >= outputSize.y) {
        return;
    }
    vec2 uv = (vec2(coord) + 0.5) / vec2(outputSize);
    vec2 t = srcTexelSize;

    vec3 a = sampleSrc(uv + vec2(-2, -2) * t);
    vec3 b = sampleSrc(uv + vec2(0, -2) * t);
    vec3 c = sampleSrc(uv + vec2(2, -2) * t);
    vec3 d = sampleSrc(uv + vec2(-1, -1) * t);
    vec3 e = sampleSrc(uv + vec2(1, -1) * t);
    vec3 f = sampleSrc(uv + vec2(-2, 0) * t);
    vec3 g = sampleSrc(uv);
    vec3 h = sampleSrc(uv + vec2(2, 0) * t);
    vec3 i = sampleSrc(uv + vec2(-1, 1) * t);
    vec3 j = sampleSrc(uv + vec2(1, 1) * t);
    vec3 k = sampleSrc(uv + vec2(-2, 2) * t);
    vec3 l = sampleSrc(uv + vec2(0, 2) * t);
    vec3 m = sampleSrc(uv + vec2(2, 2) * t);

    vec3 result = (d + e + i + j) * 0.125
                + (a + b + f + g) * 0.03125
                + (b + c + g + h) * 0.03125
                + (f + g + k + l) * 0.03125
                + (g + h + l + m) * 0.03125;

    imageStore(outImage, coord, vec4(result, 1.0));
}
` + "\x00"

// upsampleCompute applies a 3x3 tent filter while upsampling mip i+1 back
// into mip i's resolution, additively blending onto what's already there —
// the classic dual-Kawase-adjacent bloom reconstruction, generalized from
// the reference renderer's single-pass additive composite (ppFragSrc's
// hdr += texture(bloomTex, uv) * bloomStrength) into a per-mip accumulation
// step.
const upsampleCompute = `
#version 430 core
layout(local_size_x = 8, local_size_y = 8) in;

layout(binding = 0) uniform sampler2D srcColor;
layout(rgba32f, binding = 0) uniform image2D dstImage;

uniform vec2 srcTexelSize;
uniform ivec2 outputSize;
uniform float intensity;
uniform int srcMip;

vec3 sampleSrc(vec2 uv) {
    return textureLod(srcColor, uv, float(srcMip)).rgb;
}

void main() {
    ivec2 coord = ivec2(gl_GlobalInvocationID.xy);
    if (coord.x >= outputSize.x || coord.y >= outputSize.y) {
        return;
    }
    vec2 uv = (vec2(coord) + 0.5) / vec2(outputSize);
    vec2 t = srcTexelSize;

    vec3 result = sampleSrc(uv) * 4.0;
    result += (sampleSrc(uv + vec2(0, -1) * t) + sampleSrc(uv + vec2(-1, 0) * t)
             + sampleSrc(uv + vec2(1, 0) * t) + sampleSrc(uv + vec2(0, 1) * t)) * 2.0;
    result += sampleSrc(uv + vec2(-1, -1) * t) + sampleSrc(uv + vec2(1, -1) * t);
    result += sampleSrc(uv + vec2(-1, 1) * t) + sampleSrc(uv + vec2(1, 1) * t);
    result *= 1.0 / 16.0;

    vec4 existing = imageLoad(dstImage, coord);
    imageStore(dstImage, coord, existing + vec4(result * intensity, 0.0));
}
` + "\x00"
