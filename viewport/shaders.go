package viewport

// gbufferVertSrc/gbufferSkinnedVertSrc feed the deferred geometry pass,
// grounded on the reference renderer's vertSrc (internal/opengl/renderer.go) generalized
// from a single forward MVP transform into a camera uniform block
// (binding 0) plus plain model/inverseTransposeModel uniforms, and five G-buffer outputs instead of one shaded
// color, by convention.
const gbufferVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec3 inTangent;
layout(location = 4) in vec3 inBitangent;

layout(std140, binding = 0) uniform CameraBlock {
    mat4 view;
    mat4 proj;
    mat4 invView;
    mat4 invProj;
    vec3 cameraPos;
    float nearPlane;
    float farPlane;
};

uniform mat4 model;
uniform mat4 inverseTransposeModel;

out vec3 worldPos;
out vec3 worldNormal;
out vec2 fragUV;
out mat3 TBN;

void main() {
    vec4 world = model * vec4(inPosition, 1.0);
    worldPos = world.xyz;
    worldNormal = normalize(mat3(inverseTransposeModel) * inNormal);
    vec3 T = normalize(mat3(inverseTransposeModel) * inTangent);
    vec3 B = normalize(mat3(inverseTransposeModel) * inBitangent);
    TBN = mat3(T, B, worldNormal);
    fragUV = inUV;
    gl_Position = proj * view * world;
}
` + "\x00"

const gbufferSkinnedVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec3 inTangent;
layout(location = 4) in vec3 inBitangent;
layout(location = 6) in uvec4 inBoneIndices;
layout(location = 7) in vec4 inBoneWeights;

layout(std140, binding = 0) uniform CameraBlock {
    mat4 view;
    mat4 proj;
    mat4 invView;
    mat4 invProj;
    vec3 cameraPos;
    float nearPlane;
    float farPlane;
};

layout(std140, binding = 5) uniform SkinnedBlock {
    mat4 boneMatrices[100];
};

uniform mat4 model;
uniform mat4 inverseTransposeModel;

out vec3 worldPos;
out vec3 worldNormal;
out vec2 fragUV;
out mat3 TBN;

void main() {
    mat4 skin = boneMatrices[inBoneIndices.x] * inBoneWeights.x
              + boneMatrices[inBoneIndices.y] * inBoneWeights.y
              + boneMatrices[inBoneIndices.z] * inBoneWeights.z
              + boneMatrices[inBoneIndices.w] * inBoneWeights.w;

    vec4 world = model * skin * vec4(inPosition, 1.0);
    worldPos = world.xyz;
    mat3 skinNormal = mat3(inverseTransposeModel) * mat3(skin);
    worldNormal = normalize(skinNormal * inNormal);
    vec3 T = normalize(skinNormal * inTangent);
    vec3 B = normalize(skinNormal * inBitangent);
    TBN = mat3(T, B, worldNormal);
    fragUV = inUV;
    gl_Position = proj * view * world;
}
` + "\x00"

// gbufferFragSrc writes the five material channels this pipeline names,
// sampling each optional texture only when MaterialBlock's HasXTex flag is
// set — the reference renderer's hasTextureLoc/hasNormalTexLoc uniform-bool branching
// in its single forward shader, spread across five outputs instead of one.
const gbufferFragSrc = `
#version 430 core
in vec3 worldPos;
in vec3 worldNormal;
in vec2 fragUV;
in mat3 TBN;

layout(location = 0) out vec3 outNormal;
layout(location = 1) out vec3 outAlbedo;
layout(location = 2) out vec3 outMatParams;
layout(location = 3) out vec2 outAO;
layout(location = 4) out vec4 outEmissive;

layout(std140, binding = 4) uniform MaterialBlock {
    vec4 albedo;
    vec4 emissiveColor;
    float metallic;
    float roughness;
    float reflectance;
    float ambientOcclusion;
    float emissiveStrength;
    uint hasAlbedoTex;
    uint hasNormalTex;
    uint hasMetallicRoughnessTex;
    uint hasAOTex;
    uint hasEmissiveTex;
};

uniform sampler2D albedoTex;
uniform sampler2D normalTex;
uniform sampler2D metallicRoughnessTex;
uniform sampler2D aoTex;
uniform sampler2D emissiveTex;

void main() {
    vec3 albedoSample = albedo.rgb;
    if (hasAlbedoTex != 0u) {
        albedoSample *= texture(albedoTex, fragUV).rgb;
    }

    vec3 n = normalize(worldNormal);
    if (hasNormalTex != 0u) {
        vec3 tangentNormal = texture(normalTex, fragUV).rgb * 2.0 - 1.0;
        n = normalize(TBN * tangentNormal);
    }

    float metallicSample = metallic;
    float roughnessSample = roughness;
    if (hasMetallicRoughnessTex != 0u) {
        vec3 mr = texture(metallicRoughnessTex, fragUV).rgb;
        roughnessSample = mr.g;
        metallicSample = mr.b;
    }

    float aoSample = ambientOcclusion;
    if (hasAOTex != 0u) {
        aoSample *= texture(aoTex, fragUV).r;
    }

    vec3 emissiveSample = emissiveColor.rgb * emissiveStrength;
    if (hasEmissiveTex != 0u) {
        emissiveSample *= texture(emissiveTex, fragUV).rgb;
    }

    outNormal = n * 0.5 + 0.5;
    outAlbedo = albedoSample;
    outMatParams = vec3(metallicSample, roughnessSample, reflectance);
    outAO = vec2(aoSample, 0.0);
    outEmissive = vec4(emissiveSample, 1.0);
}
` + "\x00"

// lightingFragSrc is the deferred lighting pass: Cook-Torrance direct
// lighting for every point/spot/directional light plus split-sum IBL
// ambient plus CSM/spot/point shadow attenuation, drawn via
// Device.DrawFullscreenTriangle, sampling every G-buffer slot, the three IBL
// cubes, and the three shadow atlases. No forward-renderer precedent to draw
// on here — this pass has no equivalent in a purely forward pipeline; the
// BRDF terms follow the standard
// Cook-Torrance/GGX formulation already used in ibl/shaders.go's prefilter
// and BRDF-LUT passes, reused here for consistency between direct and IBL
// specular.
const lightingVertSrc = `
#version 430 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](vec2(-1.0, -1.0), vec2(3.0, -1.0), vec2(-1.0, 3.0));
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    fragUV = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

const lightingFragSrc = `
#version 430 core
in vec2 fragUV;
out vec4 outColor;

layout(std140, binding = 0) uniform CameraBlock {
    mat4 view;
    mat4 proj;
    mat4 invView;
    mat4 invProj;
    vec3 cameraPos;
    float nearPlane;
    float farPlane;
};

struct PointLightData {
    vec3 position;
    vec3 color;
    float intensity;
    float radius;
    uint isCastingShadow;
};
struct SpotLightData {
    vec3 position;
    vec3 direction;
    vec3 color;
    float intensity;
    float radius;
    float cosCutoff;
    float cosOuterCutoff;
    uint isCastingShadow;
};
struct DirectionalLightData {
    vec3 direction;
    vec3 color;
    float intensity;
    uint isCastingShadow;
};

layout(std140, binding = 2) uniform LightsBlock {
    uint pointCount;
    uint spotCount;
    uint dirCount;
    PointLightData pointLights[50];
    SpotLightData spotLights[50];
    DirectionalLightData dirLights[1];
    mat4 spotLightSpaceMatrix[50];
    mat4 dirLightSpaceMatrix[12];
};

uniform sampler2D gNormal;
uniform sampler2D gAlbedo;
uniform sampler2D gMatParams;
uniform sampler2D gAO;
uniform sampler2D gEmissive;
uniform sampler2D gDepth;

uniform samplerCube iblIrradiance;
uniform samplerCube iblPrefilter;
uniform sampler2D iblBRDFLUT;

uniform sampler2DArray shadowDirectional;
uniform sampler2DArray shadowSpot;
uniform samplerCubeArray shadowPoint;

uniform int cascadeCount;
uniform float cascadeSplits[5];

const float PI = 3.14159265359;

vec3 worldPosFromDepth(float depth, vec2 uv) {
    vec4 clip = vec4(uv * 2.0 - 1.0, depth * 2.0 - 1.0, 1.0);
    vec4 view4 = invProj * clip;
    view4 /= view4.w;
    vec4 world = invView * view4;
    return world.xyz;
}

float distributionGGX(vec3 N, vec3 H, float roughness) {
    float a = roughness * roughness;
    float a2 = a * a;
    float NdotH = max(dot(N, H), 0.0);
    float denom = (NdotH * NdotH * (a2 - 1.0) + 1.0);
    return a2 / (PI * denom * denom + 1e-7);
}
float geometrySchlickGGX(float NdotV, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}
float geometrySmith(float NdotV, float NdotL, float roughness) {
    return geometrySchlickGGX(NdotV, roughness) * geometrySchlickGGX(NdotL, roughness);
}
vec3 fresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}
vec3 fresnelSchlickRoughness(float cosTheta, vec3 F0, float roughness) {
    return F0 + (max(vec3(1.0 - roughness), F0) - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 cookTorrance(vec3 N, vec3 V, vec3 L, vec3 albedo, float metallic, float roughness, vec3 F0, vec3 radiance) {
    vec3 H = normalize(V + L);
    float NdotV = max(dot(N, V), 0.0001);
    float NdotL = max(dot(N, L), 0.0001);

    float D = distributionGGX(N, H, roughness);
    float G = geometrySmith(NdotV, NdotL, roughness);
    vec3 F = fresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 specular = (D * G * F) / (4.0 * NdotV * NdotL);
    vec3 kd = (vec3(1.0) - F) * (1.0 - metallic);
    return (kd * albedo / PI + specular) * radiance * NdotL;
}

int cascadeIndexForDepth(float viewDepth) {
    for (int i = 0; i < cascadeCount; i++) {
        if (viewDepth < cascadeSplits[i + 1]) {
            return i;
        }
    }
    return cascadeCount;
}

float sampleDirectionalShadow(vec3 worldPos, vec3 N, vec3 L, float viewDepth) {
    int idx = cascadeIndexForDepth(viewDepth);
    vec4 lightClip = dirLightSpaceMatrix[idx] * vec4(worldPos, 1.0);
    vec3 proj = lightClip.xyz / lightClip.w;
    proj = proj * 0.5 + 0.5;
    if (proj.z > 1.0) {
        return 0.0;
    }
    float bias = max(0.002 * (1.0 - dot(N, L)), 0.0005);
    float closest = texture(shadowDirectional, vec3(proj.xy, float(idx))).r;
    return proj.z - bias > closest ? 1.0 : 0.0;
}

float sampleSpotShadow(int idx, vec3 worldPos) {
    vec4 lightClip = spotLightSpaceMatrix[idx] * vec4(worldPos, 1.0);
    vec3 proj = lightClip.xyz / lightClip.w;
    proj = proj * 0.5 + 0.5;
    if (proj.z > 1.0) {
        return 0.0;
    }
    float closest = texture(shadowSpot, vec3(proj.xy, float(idx))).r;
    return proj.z - 0.001 > closest ? 1.0 : 0.0;
}

float samplePointShadow(int idx, vec3 worldPos, vec3 lightPos, float far) {
    vec3 toFrag = worldPos - lightPos;
    float currentDist = length(toFrag);
    float closest = texture(shadowPoint, vec4(toFrag, float(idx))).r;
    float bias = 0.05;
    return currentDist - bias > closest ? 1.0 : 0.0;
}

void main() {
    float depth = texture(gDepth, fragUV).r;
    if (depth >= 1.0) {
        outColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    vec3 worldPos = worldPosFromDepth(depth, fragUV);
    vec3 N = normalize(texture(gNormal, fragUV).rgb * 2.0 - 1.0);
    vec3 albedo = texture(gAlbedo, fragUV).rgb;
    vec3 matParams = texture(gMatParams, fragUV).rgb;
    float metallic = matParams.r;
    float roughness = max(matParams.g, 0.045);
    float reflectance = matParams.b;
    float ao = texture(gAO, fragUV).r;
    vec3 emissive = texture(gEmissive, fragUV).rgb;

    vec3 V = normalize(cameraPos - worldPos);
    vec3 F0 = mix(vec3(0.16 * reflectance * reflectance), albedo, metallic);

    float viewDepth = length(cameraPos - worldPos);

    vec3 Lo = vec3(0.0);
    for (uint i = 0u; i < dirCount; i++) {
        vec3 L = normalize(-dirLights[i].direction);
        vec3 radiance = dirLights[i].color * dirLights[i].intensity;
        float shadow = dirLights[i].isCastingShadow != 0u ? sampleDirectionalShadow(worldPos, N, L, viewDepth) : 0.0;
        Lo += (1.0 - shadow) * cookTorrance(N, V, L, albedo, metallic, roughness, F0, radiance);
    }
    for (uint i = 0u; i < pointCount; i++) {
        vec3 toLight = pointLights[i].position - worldPos;
        float dist = length(toLight);
        if (dist > pointLights[i].radius) {
            continue;
        }
        vec3 L = toLight / max(dist, 1e-4);
        float attenuation = 1.0 / max(dist * dist, 1e-4);
        vec3 radiance = pointLights[i].color * pointLights[i].intensity * attenuation;
        float shadow = pointLights[i].isCastingShadow != 0u ? samplePointShadow(int(i), worldPos, pointLights[i].position, pointLights[i].radius) : 0.0;
        Lo += (1.0 - shadow) * cookTorrance(N, V, L, albedo, metallic, roughness, F0, radiance);
    }
    for (uint i = 0u; i < spotCount; i++) {
        vec3 toLight = spotLights[i].position - worldPos;
        float dist = length(toLight);
        if (dist > spotLights[i].radius) {
            continue;
        }
        vec3 L = toLight / max(dist, 1e-4);
        float theta = dot(L, normalize(-spotLights[i].direction));
        float epsilon = max(spotLights[i].cosCutoff - spotLights[i].cosOuterCutoff, 1e-4);
        float coneFalloff = clamp((theta - spotLights[i].cosOuterCutoff) / epsilon, 0.0, 1.0);
        if (coneFalloff <= 0.0) {
            continue;
        }
        float attenuation = coneFalloff / max(dist * dist, 1e-4);
        vec3 radiance = spotLights[i].color * spotLights[i].intensity * attenuation;
        float shadow = spotLights[i].isCastingShadow != 0u ? sampleSpotShadow(int(i), worldPos) : 0.0;
        Lo += (1.0 - shadow) * cookTorrance(N, V, L, albedo, metallic, roughness, F0, radiance);
    }

    vec3 F = fresnelSchlickRoughness(max(dot(N, V), 0.0), F0, roughness);
    vec3 kd = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 irradiance = texture(iblIrradiance, N).rgb;
    vec3 diffuseIBL = irradiance * albedo * kd;

    vec3 R = reflect(-V, N);
    const float maxPrefilterMip = 4.0;
    vec3 prefiltered = textureLod(iblPrefilter, R, roughness * maxPrefilterMip).rgb;
    vec2 brdf = texture(iblBRDFLUT, vec2(max(dot(N, V), 0.0), roughness)).rg;
    vec3 specularIBL = prefiltered * (F * brdf.x + brdf.y);

    vec3 ambient = (diffuseIBL + specularIBL) * ao;

    outColor = vec4(Lo + ambient + emissive, 1.0);
}
` + "\x00"
