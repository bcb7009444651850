package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/sketch.wgsl
var sketchShaderSource string

// SketchShaderSource returns the WGSL source shared by both passes.
func SketchShaderSource() string {
	return sketchShaderSource
}

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// shaderSource returns the module source, translated to SPIR-V when
// useSPIRV is set.
func shaderSource(useSPIRV bool) (hal.ShaderSource, error) {
	if sketchShaderSource == "" {
		return hal.ShaderSource{}, fmt.Errorf("sketch shader source is empty")
	}
	if !useSPIRV {
		return hal.ShaderSource{WGSL: sketchShaderSource}, nil
	}
	code, err := compileSPIRV(sketchShaderSource)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: code}, nil
}
