// Package world provides the game world model: the room bank, the generated
// room graph, and the random graph builder.
package world

import "fmt"

// RoomType describes a room's role in the game.
type RoomType string

// Room roles. The on-disk record format uses these literal values.
const (
	StartRoom RoomType = "START_ROOM"
	MidRoom   RoomType = "MID_ROOM"
	EndRoom   RoomType = "END_ROOM"
)

// Valid reports whether t is one of the three known room types.
func (t RoomType) Valid() bool {
	switch t {
	case StartRoom, MidRoom, EndRoom:
		return true
	}
	return false
}

// Room represents a location in the game world.
type Room struct {
	// Name uniquely identifies the room within a game.
	Name string
	// Type is the room's role. Empty until AssignTypes runs.
	Type RoomType
	// Target is the degree the room seeks during generation. The builder may
	// raise it above the original random draw (never above the hard cap) to
	// accept a forced edge.
	Target int
	// Connections holds connected room names in creation order.
	Connections []string
}

// Degree returns the room's current connection count.
func (r *Room) Degree() int {
	return len(r.Connections)
}

// ConnectedTo reports whether the room has a connection to name.
func (r *Room) ConnectedTo(name string) bool {
	for _, c := range r.Connections {
		if c == name {
			return true
		}
	}
	return false
}

// Graph is the generated world: the selected rooms and their symmetric edges.
// It is built once per game and immutable after AssignTypes runs.
type Graph struct {
	rooms  []*Room
	byName map[string]*Room

	// Degree bounds the graph was built under, kept for Validate.
	minDegree int
	hardCap   int
}

// NewGraph creates a Graph from rooms built under the given degree bounds.
//
// Precondition: room names must be distinct; 1 <= minDegree <= hardCap.
// Postcondition: Returns a Graph indexing the rooms by name, or an error on
// duplicate names.
func NewGraph(rooms []*Room, minDegree, hardCap int) (*Graph, error) {
	g := &Graph{
		rooms:     rooms,
		byName:    make(map[string]*Room, len(rooms)),
		minDegree: minDegree,
		hardCap:   hardCap,
	}
	for _, r := range rooms {
		if _, exists := g.byName[r.Name]; exists {
			return nil, fmt.Errorf("duplicate room name: %q", r.Name)
		}
		g.byName[r.Name] = r
	}
	return g, nil
}

// Rooms returns all rooms in selection order.
func (g *Graph) Rooms() []*Room {
	return g.rooms
}

// Room returns the room with the given name.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (g *Graph) Room(name string) (*Room, bool) {
	r, ok := g.byName[name]
	return r, ok
}

// Start returns the room typed StartRoom, or nil if types are unassigned.
func (g *Graph) Start() *Room {
	for _, r := range g.rooms {
		if r.Type == StartRoom {
			return r
		}
	}
	return nil
}

// End returns the room typed EndRoom, or nil if types are unassigned.
func (g *Graph) End() *Room {
	for _, r := range g.rooms {
		if r.Type == EndRoom {
			return r
		}
	}
	return nil
}

// Validate checks graph invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (g *Graph) Validate() error {
	if len(g.rooms) == 0 {
		return fmt.Errorf("graph must contain at least one room")
	}
	typed := false
	starts, ends := 0, 0
	for _, r := range g.rooms {
		if r.Name == "" {
			return fmt.Errorf("room name must not be empty")
		}
		if r.Degree() < g.minDegree || r.Degree() > g.hardCap {
			return fmt.Errorf("room %q: degree %d outside [%d, %d]",
				r.Name, r.Degree(), g.minDegree, g.hardCap)
		}
		seen := make(map[string]bool, len(r.Connections))
		for _, c := range r.Connections {
			if c == r.Name {
				return fmt.Errorf("room %q: connected to itself", r.Name)
			}
			if seen[c] {
				return fmt.Errorf("room %q: duplicate connection to %q", r.Name, c)
			}
			seen[c] = true
			peer, ok := g.byName[c]
			if !ok {
				return fmt.Errorf("room %q: connected to unknown room %q", r.Name, c)
			}
			if !peer.ConnectedTo(r.Name) {
				return fmt.Errorf("asymmetric edge: %q lists %q but not vice versa", r.Name, c)
			}
		}
		if r.Type != "" {
			typed = true
			if !r.Type.Valid() {
				return fmt.Errorf("room %q: unknown type %q", r.Name, r.Type)
			}
			switch r.Type {
			case StartRoom:
				starts++
			case EndRoom:
				ends++
			}
		}
	}
	if typed {
		if starts != 1 {
			return fmt.Errorf("expected exactly one start room, got %d", starts)
		}
		if ends != 1 {
			return fmt.Errorf("expected exactly one end room, got %d", ends)
		}
	}
	return nil
}

// Connected reports whether every room is reachable from every other.
// Edges are symmetric, so reachability from any single room suffices.
//
// Precondition: the graph must contain at least one room.
func (g *Graph) Connected() bool {
	if len(g.rooms) == 0 {
		return false
	}
	visited := make(map[string]bool, len(g.rooms))
	queue := []string{g.rooms[0].Name}
	visited[g.rooms[0].Name] = true
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, c := range g.byName[name].Connections {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
	return len(visited) == len(g.rooms)
}
