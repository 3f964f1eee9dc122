// SPDX-License-Identifier: MIT

package mapper

import (
	"fmt"

	"github.com/katalvlaran/skylane/core"
)

// CruiseFraction is the share of a vehicle's maximum speed used for every
// waypoint of a planned route.
const CruiseFraction = 0.8

// Waypoint is one step of a route handed to a vehicle.
type Waypoint struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Altitude    float64 `json:"altitude"`
	Speed       float64 `json:"speed"`
	Description string  `json:"description"`
}

// Waypoints converts path into waypoints flown at CruiseFraction·maxSpeed.
// Descriptions are numbered from 1.
func (m *Mapper) Waypoints(path core.Path, maxSpeed float64) ([]Waypoint, error) {
	out := make([]Waypoint, 0, len(path))
	for i, id := range path {
		pos, err := m.Position(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Waypoint{
			X:           pos.X,
			Y:           pos.Y,
			Z:           pos.Z,
			Altitude:    pos.Z,
			Speed:       maxSpeed * CruiseFraction,
			Description: fmt.Sprintf("Graph waypoint %d", i+1),
		})
	}

	return out, nil
}
