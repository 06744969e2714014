package lightlab

// Query walks the entities of a graph that implement or are of type A.
type Query[A any] struct{ graph *SceneGraph }

func MakeQuery[A any](g *SceneGraph) Query[A] { return Query[A]{graph: g} }

// Map calls m for every matching entity in insertion order until m returns false.
func (q Query[A]) Map(m func(EntityId, A) bool) {
	for e := range q.graph.Traverse() {
		a, ok := e.(A)
		if !ok {
			continue
		}
		if !m(e.Object().ID, a) {
			return
		}
	}
}

// First returns the first match, if any.
func (q Query[A]) First() (A, bool) {
	var (
		found A
		ok    bool
	)
	q.Map(func(_ EntityId, a A) bool {
		found, ok = a, true
		return false
	})
	return found, ok
}

func (q Query[A]) Count() int {
	n := 0
	q.Map(func(EntityId, A) bool {
		n++
		return true
	})
	return n
}

// Named finds a matching entity by name.
func (q Query[A]) Named(name string) (A, bool) {
	var (
		found A
		ok    bool
	)
	for e := range q.graph.Traverse() {
		if e.Object().Name != name {
			continue
		}
		if a, match := e.(A); match {
			found, ok = a, true
			break
		}
	}
	return found, ok
}
