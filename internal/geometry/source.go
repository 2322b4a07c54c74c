package geometry

// Collection names used in MalformedInputError.
const (
	CollectionRoom       = "room"
	CollectionPipes      = "pipes"
	CollectionSprinklers = "sprinklers"
	CollectionConnectors = "connectors"
)

// Source supplies the raw entities of one diagram. Implementations return
// values as stored; callers must not rely on mutating the returned slices.
type Source interface {
	Name() string
	Room() RoomBoundary
	Pipes() []Pipe
	Sprinklers() []Sprinkler
	Connectors() []Connector
}

// Dataset is an in-memory Source. Every accessor returns a copy, so a Dataset
// is safe to share between pipeline runs.
type Dataset struct {
	name       string
	room       RoomBoundary
	pipes      []Pipe
	sprinklers []Sprinkler
	connectors []Connector
}

// NewDataset copies the given collections into a Dataset.
func NewDataset(name string, room []Point3D, pipes []Pipe, sprinklers []Sprinkler, connectors []Connector) *Dataset {
	return &Dataset{
		name:       name,
		room:       append(RoomBoundary(nil), room...),
		pipes:      append([]Pipe(nil), pipes...),
		sprinklers: append([]Sprinkler(nil), sprinklers...),
		connectors: append([]Connector(nil), connectors...),
	}
}

// Snapshot copies any Source into a Dataset.
func Snapshot(src Source) *Dataset {
	return NewDataset(src.Name(), src.Room(), src.Pipes(), src.Sprinklers(), src.Connectors())
}

func (d *Dataset) Name() string { return d.name }

func (d *Dataset) Room() RoomBoundary { return append(RoomBoundary(nil), d.room...) }

func (d *Dataset) Pipes() []Pipe { return append([]Pipe(nil), d.pipes...) }

func (d *Dataset) Sprinklers() []Sprinkler { return append([]Sprinkler(nil), d.sprinklers...) }

func (d *Dataset) Connectors() []Connector { return append([]Connector(nil), d.connectors...) }

// Validate checks the raw collections of src: a closed room boundary of at
// least MinRoomPoints points, at least one pipe with distinct endpoints and a
// unique non-negative id, non-empty unique sprinkler labels and finite
// coordinates everywhere. tol is the closure tolerance in millimetres.
// Cross-references between collections are checked by the scene builder.
func Validate(src Source, tol float64) error {
	room := src.Room()
	if len(room) == 0 {
		return malformed(CollectionRoom, -1, "boundary is empty")
	}
	for i, p := range room {
		if !p.IsFinite() {
			return malformed(CollectionRoom, i, "non-finite coordinate %v", p)
		}
	}
	if len(room) < MinRoomPoints {
		return malformed(CollectionRoom, -1, "boundary has %d points, need at least %d", len(room), MinRoomPoints)
	}
	if !room.Closed(tol) {
		return malformed(CollectionRoom, -1, "boundary is not closed: first %v, last %v", room[0], room[len(room)-1])
	}

	pipes := src.Pipes()
	if len(pipes) == 0 {
		return malformed(CollectionPipes, -1, "at least one pipe is required")
	}
	ids := make(map[int]bool, len(pipes))
	for i, p := range pipes {
		if !p.Start.IsFinite() || !p.End.IsFinite() {
			return malformed(CollectionPipes, i, "non-finite endpoint %v", p.Segment())
		}
		if p.ID < 0 {
			return malformed(CollectionPipes, i, "negative id %d", p.ID)
		}
		if ids[p.ID] {
			return malformed(CollectionPipes, i, "duplicate id %d", p.ID)
		}
		ids[p.ID] = true
		if p.Start.ApproxEqual(p.End, tol) {
			return malformed(CollectionPipes, i, "endpoints coincide at %v (length %.3f mm)", p.Start, p.Segment().Length())
		}
	}

	labels := make(map[string]bool)
	for i, s := range src.Sprinklers() {
		if !s.Position.IsFinite() {
			return malformed(CollectionSprinklers, i, "non-finite position %v", s.Position)
		}
		if s.Label == "" {
			return malformed(CollectionSprinklers, i, "empty label")
		}
		if labels[s.Label] {
			return malformed(CollectionSprinklers, i, "duplicate label %q", s.Label)
		}
		labels[s.Label] = true
	}

	for i, c := range src.Connectors() {
		if !c.Start.IsFinite() || !c.End.IsFinite() {
			return malformed(CollectionConnectors, i, "non-finite endpoint %v", c.Segment())
		}
	}
	return nil
}
