package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polysketch"
	"github.com/gogpu/wgpu/hal"
)

// sketchVertexStride is the byte stride per vertex in both pipelines.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
//
// Total = 24 bytes per vertex.
const sketchVertexStride = polysketch.VertexSize

// sketchPipelines owns the shader module, layout and the two render
// pipelines: filled triangles for markers and a line strip for the outline.
type sketchPipelines struct {
	device hal.Device
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	quad       hal.RenderPipeline
	edge       hal.RenderPipeline
}

func newSketchPipelines(device hal.Device, format gputypes.TextureFormat) *sketchPipelines {
	return &sketchPipelines{device: device, format: format}
}

// ensure creates all pipeline objects if they don't already exist.
func (p *sketchPipelines) ensure(useSPIRV bool) error {
	if p.quad != nil && p.edge != nil {
		return nil
	}
	p.destroy()

	source, err := shaderSource(useSPIRV)
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sketch_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("compile sketch shader: %w", err)
	}
	p.shader = shader

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "sketch_pipe_layout",
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sketch pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	quad, err := p.create("sketch_quad_pipeline", gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		p.destroy()
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	p.quad = quad

	edge, err := p.create("sketch_edge_pipeline", gputypes.PrimitiveTopologyLineStrip)
	if err != nil {
		p.destroy()
		return fmt.Errorf("create edge pipeline: %w", err)
	}
	p.edge = edge

	slogger().Info("gpu: sketch pipelines created", "format", p.format, "spirv", useSPIRV)
	return nil
}

func (p *sketchPipelines) create(label string, topology gputypes.PrimitiveTopology) (hal.RenderPipeline, error) {
	return p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    sketchVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

// destroy releases all pipeline resources in reverse creation order.
func (p *sketchPipelines) destroy() {
	if p.device == nil {
		return
	}
	if p.edge != nil {
		p.device.DestroyRenderPipeline(p.edge)
		p.edge = nil
	}
	if p.quad != nil {
		p.device.DestroyRenderPipeline(p.quad)
		p.quad = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// sketchVertexLayout returns the vertex buffer layout shared by both
// pipelines. Matches VertexInput in sketch.wgsl.
func sketchVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: sketchVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}
