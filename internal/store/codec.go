package store

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/starquest/internal/game/world"
)

// Record file field prefixes. The layout is the classic game's:
//
//	ROOM NAME: Bridge
//	CONNECTION 1: Lab
//	CONNECTION 2: Cargo
//	ROOM TYPE: START_ROOM
const (
	namePrefix = "ROOM NAME: "
	connPrefix = "CONNECTION "
	typePrefix = "ROOM TYPE: "
)

// EncodeRecord renders a record in the room file format.
//
// Precondition: rec.Name must be non-empty; rec.Type must be valid.
// Postcondition: DecodeRecord(EncodeRecord(rec)) == rec.
func EncodeRecord(rec Record) []byte {
	var b strings.Builder
	b.WriteString(namePrefix)
	b.WriteString(rec.Name)
	b.WriteByte('\n')
	for i, c := range rec.Connections {
		fmt.Fprintf(&b, "%s%d: %s\n", connPrefix, i+1, c)
	}
	b.WriteString(typePrefix)
	b.WriteString(string(rec.Type))
	b.WriteByte('\n')
	return []byte(b.String())
}

// DecodeRecord parses a record from the room file format. Connection order
// is preserved.
//
// Postcondition: Returns a Record with non-empty name and a valid type, or an
// error describing the first malformed line.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, namePrefix):
			rec.Name = strings.TrimSpace(line[len(namePrefix):])
		case strings.HasPrefix(line, typePrefix):
			rec.Type = world.RoomType(strings.TrimSpace(line[len(typePrefix):]))
		case strings.HasPrefix(line, connPrefix):
			rest := line[len(connPrefix):]
			_, after, found := strings.Cut(rest, ": ")
			if !found {
				return Record{}, fmt.Errorf("malformed connection line %q", line)
			}
			rec.Connections = append(rec.Connections, strings.TrimSpace(after))
		default:
			return Record{}, fmt.Errorf("unrecognized record line %q", line)
		}
	}
	if rec.Name == "" {
		return Record{}, fmt.Errorf("record has no room name")
	}
	if !rec.Type.Valid() {
		return Record{}, fmt.Errorf("record %q has invalid type %q", rec.Name, rec.Type)
	}
	return rec, nil
}
