package lightlab

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/google/uuid"
)

// SceneGraph is the root container handed to the renderer each frame.
// Entities are kept in insertion order and each belongs to exactly one graph.
type SceneGraph struct {
	id       uuid.UUID
	entities []Entity
	index    map[EntityId]int
	nextId   EntityId
}

func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		id:     uuid.New(),
		index:  make(map[EntityId]int),
		nextId: 1,
	}
}

func (g *SceneGraph) ID() uuid.UUID { return g.id }

// Insert adds e to the graph. Inserting an entity the graph already owns is a no-op.
func (g *SceneGraph) Insert(e Entity) error {
	if isNilEntity(e) {
		return ErrNilEntity
	}
	obj := e.Object()
	switch obj.owner {
	case g.id:
		return nil
	case uuid.Nil:
	default:
		return fmt.Errorf("insert %q: %w", obj.Name, ErrForeignEntity)
	}

	obj.owner = g.id
	obj.ID = g.nextId
	g.nextId++
	g.index[obj.ID] = len(g.entities)
	g.entities = append(g.entities, e)
	return nil
}

// isNilEntity also catches typed nil pointers, whose Object() would fault.
func isNilEntity(e Entity) bool {
	if e == nil {
		return true
	}
	if v := reflect.ValueOf(e); v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}
	return e.Object() == nil
}

// InsertAll inserts entities in order and stops at the first failure.
func (g *SceneGraph) InsertAll(entities ...Entity) error {
	for _, e := range entities {
		if err := g.Insert(e); err != nil {
			return err
		}
	}
	return nil
}

// Traverse yields every entity in insertion order. The sequence can be
// ranged over any number of times.
func (g *SceneGraph) Traverse() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range g.entities {
			if !yield(e) {
				return
			}
		}
	}
}

func (g *SceneGraph) Len() int { return len(g.entities) }

func (g *SceneGraph) Lookup(id EntityId) (Entity, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.entities[i], true
}

// Lights yields the lighting set. Helpers are not lights and never appear here.
func (g *SceneGraph) Lights() iter.Seq[Light] {
	return func(yield func(Light) bool) {
		MakeQuery[Light](g).Map(func(_ EntityId, l Light) bool {
			return yield(l)
		})
	}
}

func (g *SceneGraph) Helpers() iter.Seq[*LightHelper] {
	return func(yield func(*LightHelper) bool) {
		MakeQuery[*LightHelper](g).Map(func(_ EntityId, h *LightHelper) bool {
			return yield(h)
		})
	}
}
