package reshaper

import (
	"errors"
	"fmt"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/deform"
	"github.com/gekko3d/reshaper/shape/feedback"
	"github.com/gekko3d/reshaper/shape/flow"
	"github.com/gekko3d/reshaper/shape/mesh"
	"github.com/gekko3d/reshaper/shape/metrics"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	ErrDuplicateBody    = errors.New("body name already in scene")
	ErrUnknownReference = errors.New("reference body not in scene")
)

type BodyId string

func NewBodyId() BodyId {
	return BodyId(uuid.NewString())
}

// SceneDef defines the bodies of a session, spawned in order.
type SceneDef struct {
	Bodies []BodyDef
}

// BodyDef defines one reshapeable body.
type BodyDef struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat // zero value means identity
	Scale    mgl32.Vec3 // zero value means unit scale

	Radius       float32
	Subdivisions int
	// Jitter is applied once at spawn; nil leaves the sphere perfect.
	Jitter *mesh.JitterConfig

	Deform  deform.Config
	Meter   metrics.Config
	Scaling scaling.Config
	Ring    feedback.RingConfig
	Marker  feedback.MarkerConfig
	Flow    flow.Config

	// RelativeTo names an earlier body; the target diameter becomes
	// Ratio times that body's target.
	RelativeTo string
	Ratio      float32
}

func DefaultBodyDef(name string) BodyDef {
	jitter := mesh.DefaultJitterConfig()
	return BodyDef{
		Name:         name,
		Scale:        mgl32.Vec3{1, 1, 1},
		Radius:       0.5,
		Subdivisions: 3,
		Jitter:       &jitter,
		Deform:       deform.DefaultConfig(),
		Meter:        metrics.DefaultConfig(),
		Scaling:      scaling.DefaultConfig(),
		Ring:         feedback.DefaultRingConfig(),
		Marker:       feedback.DefaultMarkerConfig(),
		Flow:         flow.DefaultConfig(),
	}
}

// Body bundles one target object with its pipeline. Every component holds
// non-owning references to Transform and Mesh.
type Body struct {
	Id   BodyId
	Name string
	Def  BodyDef

	Transform *core.Transform
	Mesh      *mesh.Mesh
	Collider  *mesh.Collider
	Deformer  *deform.Deformer
	Meter     *metrics.Meter
	Scaler    scaling.Controller
	Ring      *feedback.Ring
	Marker    *feedback.Marker
	Flow      *flow.Orchestrator

	refreshPending bool
}

// WorldBounds is the mesh's local bounds through the current transform.
func (b *Body) WorldBounds() core.AABB {
	return b.Mesh.Bounds.Transformed(b.Transform)
}

func (b *Body) Phase() flow.Phase {
	return b.Flow.Phase()
}

// BoundingSphere encloses the world bounds; used for picking when the mesh
// collider is off.
func (b *Body) BoundingSphere() (mgl32.Vec3, float32) {
	wb := b.WorldBounds()
	if wb.IsEmpty() {
		return b.Transform.Position, 0
	}
	s := wb.Size()
	return wb.Center(), core.Max3(s.X(), s.Y(), s.Z()) * 0.5
}

type templateKey struct {
	radius       float32
	subdivisions int
}

// Scene owns the session's bodies and the shared sphere templates.
type Scene struct {
	bodies    []*Body
	templates map[templateKey]*mesh.Template
	selected  BodyId
	logger    Logger
	listeners []func(*Body, flow.Transition)
}

func NewScene(logger Logger) *Scene {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Scene{
		templates: make(map[templateKey]*mesh.Template),
		logger:    logger,
	}
}

func (s *Scene) Bodies() []*Body {
	return s.bodies
}

func (s *Scene) Body(id BodyId) *Body {
	for _, b := range s.bodies {
		if b.Id == id {
			return b
		}
	}
	return nil
}

func (s *Scene) ByName(name string) *Body {
	for _, b := range s.bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (s *Scene) Selected() *Body {
	return s.Body(s.selected)
}

func (s *Scene) Select(id BodyId) {
	s.selected = id
}

// OnTransition registers fn for phase changes of every body, current and future.
func (s *Scene) OnTransition(fn func(*Body, flow.Transition)) {
	s.listeners = append(s.listeners, fn)
}

// Colliders lists every body's collider; disabled ones never hit.
func (s *Scene) Colliders() []*mesh.Collider {
	out := make([]*mesh.Collider, 0, len(s.bodies))
	for _, b := range s.bodies {
		out = append(out, b.Collider)
	}
	return out
}

func (s *Scene) template(radius float32, subdivisions int) *mesh.Template {
	key := templateKey{radius: radius, subdivisions: subdivisions}
	t, ok := s.templates[key]
	if !ok {
		t = mesh.NewTemplate(mesh.NewIcosphere(radius, subdivisions))
		s.templates[key] = t
	}
	return t
}

// Spawn builds a body from def and wires its pipeline. The body starts in
// Deform.
func (s *Scene) Spawn(def BodyDef) (*Body, error) {
	if def.Name == "" {
		return nil, errors.New("body name is empty")
	}
	if s.ByName(def.Name) != nil {
		return nil, fmt.Errorf("%q: %w", def.Name, ErrDuplicateBody)
	}
	if def.Radius <= 0 {
		def.Radius = 0.5
	}

	if def.RelativeTo != "" {
		ref := s.ByName(def.RelativeTo)
		if ref == nil {
			return nil, fmt.Errorf("%q relative to %q: %w", def.Name, def.RelativeTo, ErrUnknownReference)
		}
		def.Scaling.TargetDiameter = def.Ratio * ref.Scaler.TargetDiameter()
	}

	m := s.template(def.Radius, def.Subdivisions).Instance()
	if def.Jitter != nil {
		if err := mesh.NewJitterer(*def.Jitter).Apply(m); err != nil {
			return nil, fmt.Errorf("jitter %q: %w", def.Name, err)
		}
	}

	tr := core.NewTransform()
	tr.Position = def.Position
	if def.Rotation != (mgl32.Quat{}) {
		tr.Rotation = def.Rotation
	}
	if def.Scale != (mgl32.Vec3{}) {
		tr.SetScale(def.Scale)
	}

	id := NewBodyId()
	b := &Body{
		Id:        id,
		Name:      def.Name,
		Def:       def,
		Transform: tr,
		Mesh:      m,
		Collider:  mesh.NewCollider(string(id), m, tr),
		Deformer:  deform.New(string(id), m, def.Deform),
		Meter:     metrics.New(m, tr, def.Meter),
		Ring:      feedback.NewRing(def.Ring),
	}

	scaler, err := scaling.NewController(def.Scaling, scaling.Sources{
		Transform: tr,
		Meter:     b.Meter,
		Bounds:    b,
	})
	if err != nil {
		return nil, fmt.Errorf("scaler %q: %w", def.Name, err)
	}
	b.Scaler = scaler

	markerCfg := def.Marker
	markerCfg.BaseRadius = def.Radius
	b.Marker = feedback.NewMarker(markerCfg, tr, b.Ring)

	b.Flow = flow.New(string(id), def.Flow, flow.Collaborators{
		Meter:     b.Meter,
		Scaler:    scaler,
		Deformer:  b.Deformer,
		Collider:  b.Collider,
		Ring:      b.Ring,
		Marker:    b.Marker,
		Transform: tr,
	})
	b.Flow.OnTransition(func(t flow.Transition) {
		s.logger.Infof("%s: %s -> %s at tick %d", b.Name, t.From, t.To, t.Tick)
		for _, fn := range s.listeners {
			fn(b, t)
		}
	})

	s.bodies = append(s.bodies, b)
	s.logger.Debugf("spawned %s (%s): %d vertices, target diameter %.3f",
		b.Name, b.Id, m.VertexCount(), scaler.TargetDiameter())
	return b, nil
}

func (s *Scene) Remove(id BodyId) bool {
	for i, b := range s.bodies {
		if b.Id == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			if s.selected == id {
				s.selected = ""
			}
			return true
		}
	}
	return false
}

// SceneModule installs the Scene resource and spawns Def's bodies.
type SceneModule struct {
	Def SceneDef
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	scene := NewScene(app.Logger())
	cmd.AddResources(scene)
	for _, def := range mod.Def.Bodies {
		cmd.SpawnBody(def)
	}
	app.FlushCommands()
}
