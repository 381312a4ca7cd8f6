package power

import "fmt"

const (
	BatteryNode = "Battery"
	SolarNode   = "Solar"
	BoatNode    = "Boat"
	BusBarNode  = "BusBar"
)

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

type Topology struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func sourceNodes(source Source) []Node {
	return []Node{
		{ID: BatteryNode, Label: fmt.Sprintf("Battery\nCapacity: %.2f kWh", source.BatteryCapacity)},
		{ID: SolarNode, Label: fmt.Sprintf("Solar Panel\nPower: %.2f kW", source.SolarPower)},
	}
}

func deviceNode(device Device) Node {
	return Node{ID: device.Name, Label: fmt.Sprintf("%s\nPower: %g W", device.Name, device.Power)}
}

// Connections describes the sources feeding the boat and the boat feeding every device.
func Connections(source Source, devices *Devices) Topology {
	t := Topology{Nodes: sourceNodes(source)}
	t.Nodes = append(t.Nodes, Node{ID: BoatNode, Label: BoatNode})

	t.Edges = append(t.Edges,
		Edge{From: BatteryNode, To: BoatNode},
		Edge{From: SolarNode, To: BoatNode})

	for _, device := range devices.List() {
		t.Nodes = append(t.Nodes, deviceNode(device))
		t.Edges = append(t.Edges, Edge{From: BoatNode, To: device.Name})
	}
	return t
}

// Wiring describes the same installation through a main bus bar with its protections.
func Wiring(source Source, devices *Devices) Topology {
	t := Topology{Nodes: sourceNodes(source)}
	t.Nodes = append(t.Nodes, Node{ID: BusBarNode, Label: "Main Bus Bar"})

	t.Edges = append(t.Edges,
		Edge{From: BatteryNode, To: BusBarNode, Label: "Fuse"},
		Edge{From: SolarNode, To: BusBarNode, Label: "Charge Controller"})

	for _, device := range devices.List() {
		t.Nodes = append(t.Nodes, deviceNode(device))
		t.Edges = append(t.Edges, Edge{From: BusBarNode, To: device.Name, Label: "Circuit Breaker"})
	}
	return t
}
