package domain

// Normalize converts a raw detail record into its display-ready form.
// It never fails: missing stats default to 0 and missing types yield an empty slice.
func Normalize(r DetailRecord) Pokemon {
	types := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		types = append(types, t.Type.Name)
	}

	return Pokemon{
		ID:       r.ID,
		Name:     r.Name,
		WeightKg: float64(r.Weight) / 10,
		HeightM:  float64(r.Height) / 10,
		Stats: Stats{
			HP:             baseStat(r.Stats, StatHP),
			Attack:         baseStat(r.Stats, StatAttack),
			Defense:        baseStat(r.Stats, StatDefense),
			SpecialAttack:  baseStat(r.Stats, StatSpecialAttack),
			SpecialDefense: baseStat(r.Stats, StatSpecialDefense),
			Speed:          baseStat(r.Stats, StatSpeed),
		},
		Types:          types,
		SpriteURL:      r.Sprites.FrontDefault,
		BaseExperience: r.BaseExperience,
	}
}

// NormalizeAll normalizes records preserving their order.
func NormalizeAll(records []DetailRecord) []Pokemon {
	out := make([]Pokemon, len(records))
	for i, r := range records {
		out[i] = Normalize(r)
	}
	return out
}

// baseStat returns the value of the first stat with the given name, or 0.
func baseStat(stats []StatDetail, name string) int {
	for _, s := range stats {
		if s.Stat.Name == name {
			return s.BaseStat
		}
	}
	return 0
}
