package api

import (
	"fmt"
	"strings"

	"github.com/bvggrabber/bvg-cli/internal/format"
)

// Vehicle is a bitmask of transport modes. The scheduled board expects it as a seven
// character bit string, S-Bahn first.
type Vehicle uint8

const (
	VehicleIC Vehicle = 1 << iota
	VehicleRB
	VehicleFerry
	VehicleBus
	VehicleTram
	VehicleU
	VehicleS

	AllVehicles = VehicleS | VehicleU | VehicleTram | VehicleBus | VehicleFerry | VehicleRB | VehicleIC
)

const vehicleBits = 7

var vehicleNames = []struct {
	vehicle Vehicle
	name    string
	aliases []string
}{
	{VehicleS, "S", []string{"SBAHN", "S-BAHN"}},
	{VehicleU, "U", []string{"UBAHN", "U-BAHN"}},
	{VehicleTram, "TRAM", nil},
	{VehicleBus, "BUS", nil},
	{VehicleFerry, "FERRY", []string{"SHIP"}},
	{VehicleRB, "RB", []string{"RE", "REGIONAL"}},
	{VehicleIC, "IC", []string{"ICE", "INTERCITY"}},
}

// ParseVehicles turns names like "S", "tram" or "BUS" into a bitmask.
func ParseVehicles(names []string) (Vehicle, error) {
	var v Vehicle
	for _, raw := range names {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		found := false
		for _, vn := range vehicleNames {
			if vn.name == name || containsString(vn.aliases, name) {
				v |= vn.vehicle
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown vehicle %q (want S, U, TRAM, BUS, FERRY, RB or IC)", raw)
		}
	}
	return v, nil
}

func (v Vehicle) Has(other Vehicle) bool {
	return v&other == other
}

// ProductsFilter renders the mask as the bit string sent to the scheduled board.
func (v Vehicle) ProductsFilter() string {
	s, _ := format.IntToBin(int(v&AllVehicles), vehicleBits)
	return s
}

// Names lists the selected vehicles, S-Bahn first.
func (v Vehicle) Names() []string {
	var names []string
	for _, vn := range vehicleNames {
		if v.Has(vn.vehicle) {
			names = append(names, vn.name)
		}
	}
	return names
}

func (v Vehicle) String() string {
	if v == 0 {
		return "none"
	}
	return strings.Join(v.Names(), ",")
}

func containsString(s []string, str string) bool {
	for _, item := range s {
		if item == str {
			return true
		}
	}
	return false
}
