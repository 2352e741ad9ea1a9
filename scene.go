package accel

import (
	"sync"

	"github.com/gekko3d/gekko-accel/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type ObjectID = uuid.UUID

type RaycastHit struct {
	Hit    bool
	T      float32
	Point  mgl32.Vec3
	Normal mgl32.Vec3
	Object ObjectID
}

type sceneObject struct {
	id    ObjectID
	shape geom.Shape
}

// Scene is a mutable object set. Edits mark it dirty and queries run against
// the tree built by the last Commit.
type Scene struct {
	mu      sync.RWMutex
	cfg     Config
	logger  Logger
	objects []sceneObject
	index   map[ObjectID]int
	dirty   bool

	accel     *Accel
	committed []ObjectID // accel primitive id -> object
}

func NewScene(cfg Config, logger Logger) *Scene {
	return &Scene{
		cfg:    cfg,
		logger: orNop(logger),
		index:  make(map[ObjectID]int),
	}
}

func (s *Scene) Add(shape geom.Shape) ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.index[id] = len(s.objects)
	s.objects = append(s.objects, sceneObject{id: id, shape: shape})
	s.dirty = true
	return id
}

func (s *Scene) Remove(id ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.objects) - 1
	if i != last {
		s.objects[i] = s.objects[last]
		s.index[s.objects[i].id] = i
	}
	s.objects = s.objects[:last]
	delete(s.index, id)
	s.dirty = true
	return true
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *Scene) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Commit rebuilds the tree if the object set changed since the last Commit.
// On error the previous tree stays in use.
func (s *Scene) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if len(s.objects) == 0 {
		s.accel, s.committed, s.dirty = nil, nil, false
		return nil
	}

	shapes := make([]geom.Shape, len(s.objects))
	ids := make([]ObjectID, len(s.objects))
	for i, o := range s.objects {
		shapes[i] = o.shape
		ids[i] = o.id
	}
	a, err := Build(shapes, s.cfg, s.logger)
	if err != nil {
		s.logger.Errorf("scene commit: %v", err)
		return err
	}
	s.accel, s.committed, s.dirty = a, ids, false
	return nil
}

func (s *Scene) Raycast(origin, dir mgl32.Vec3, maxDist float32) RaycastHit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accel == nil {
		return RaycastHit{}
	}
	h, ok := s.accel.ClosestHit(origin, dir, maxDist)
	if !ok {
		return RaycastHit{}
	}
	return RaycastHit{Hit: true, T: h.T, Point: h.Point, Normal: h.Normal, Object: s.committed[h.Primitive]}
}

// Visible returns the committed objects whose bounds intersect the frustum.
func (s *Scene) Visible(planes [6]mgl32.Vec4) []ObjectID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accel == nil {
		return nil
	}
	ids := s.accel.Cull(planes)
	out := make([]ObjectID, len(ids))
	for i, id := range ids {
		out[i] = s.committed[id]
	}
	return out
}
