package power

type Device struct {
	Name  string  `json:"name"`
	Power float64 `json:"power"`
}

// Devices is an ordered set of devices keyed by name.
// The zero value is an empty set. A nil *Devices reads as empty and Remove
// does nothing on it, but Add needs a non-nil set.
type Devices struct {
	list []Device
}

func NewDevices(devices ...Device) *Devices {
	d := &Devices{}
	for _, device := range devices {
		d.Add(device)
	}
	return d
}

// Add appends the device, or replaces the power of the device with the same name.
func (d *Devices) Add(device Device) {
	for i := range d.list {
		if d.list[i].Name == device.Name {
			d.list[i].Power = device.Power
			return
		}
	}
	d.list = append(d.list, device)
}

// Remove deletes the device with the given name and reports whether it was present.
func (d *Devices) Remove(name string) bool {
	if d == nil {
		return false
	}
	for i := range d.list {
		if d.list[i].Name == name {
			d.list = append(d.list[:i], d.list[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Devices) Len() int {
	if d == nil {
		return 0
	}
	return len(d.list)
}

func (d *Devices) List() []Device {
	if d == nil {
		return nil
	}
	return append([]Device(nil), d.list...)
}

// TotalPower returns the summed draw in W.
func (d *Devices) TotalPower() float64 {
	if d == nil {
		return 0
	}
	total := 0.0
	for _, device := range d.list {
		total += device.Power
	}
	return total
}
