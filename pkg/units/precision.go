package units

// WeightPrecision maps a weight unit to the decimal places it is displayed with.
type WeightPrecision map[WeightUnit]int

// VolumePrecision maps a volume unit to the decimal places it is displayed with.
type VolumePrecision map[VolumeUnit]int

// DefaultWeightPrecision returns a fresh copy of the default weight precision map.
func DefaultWeightPrecision() WeightPrecision {
	return WeightPrecision{Ounce: 2, Gram: 0, Kilogram: 3}
}

// DefaultVolumePrecision returns a fresh copy of the default volume precision map.
func DefaultVolumePrecision() VolumePrecision {
	return VolumePrecision{Gallon: 2, Liter: 2, Milliliter: 0}
}

// For returns the decimal places for u. Units missing from p fall back to the
// default map, and unknown units use the gram precision.
func (p WeightPrecision) For(u WeightUnit) int {
	if d, ok := p[u]; ok {
		return d
	}
	def := DefaultWeightPrecision()
	if d, ok := def[u]; ok {
		return d
	}
	return def[Gram]
}

// For returns the decimal places for u. Units missing from p fall back to the
// default map, and unknown units use the liter precision.
func (p VolumePrecision) For(u VolumeUnit) int {
	if d, ok := p[u]; ok {
		return d
	}
	def := DefaultVolumePrecision()
	if d, ok := def[u]; ok {
		return d
	}
	return def[Liter]
}

// Merge returns a copy of the defaults with the entries of p laid over them.
func (p WeightPrecision) Merge() WeightPrecision {
	out := DefaultWeightPrecision()
	for u, d := range p {
		out[u] = d
	}
	return out
}

// Merge returns a copy of the defaults with the entries of p laid over them.
func (p VolumePrecision) Merge() VolumePrecision {
	out := DefaultVolumePrecision()
	for u, d := range p {
		out[u] = d
	}
	return out
}
