package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestDetail() DetailRecord {
	return DetailRecord{
		ID:             1,
		Name:           "bulbasaur",
		Height:         7,
		Weight:         69,
		BaseExperience: 64,
		Sprites:        Sprites{FrontDefault: "https://img.example/1.png"},
		Stats: []StatDetail{
			{BaseStat: 45, Stat: NamedRef{Name: "hp"}},
			{BaseStat: 49, Stat: NamedRef{Name: "attack"}},
			{BaseStat: 49, Stat: NamedRef{Name: "defense"}},
			{BaseStat: 65, Stat: NamedRef{Name: "special-attack"}},
			{BaseStat: 65, Stat: NamedRef{Name: "special-defense"}},
			{BaseStat: 45, Stat: NamedRef{Name: "speed"}},
		},
		Types: []TypeDetail{
			{Slot: 1, Type: NamedRef{Name: "grass"}},
			{Slot: 2, Type: NamedRef{Name: "poison"}},
		},
	}
}

func TestNormalize(t *testing.T) {
	p := Normalize(createTestDetail())

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "bulbasaur", p.Name)
	assert.InDelta(t, 6.9, p.WeightKg, 1e-9)
	assert.InDelta(t, 0.7, p.HeightM, 1e-9)
	assert.Equal(t, Stats{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45}, p.Stats)
	assert.Equal(t, []string{"grass", "poison"}, p.Types)
	assert.Equal(t, "https://img.example/1.png", p.SpriteURL)
	assert.Equal(t, 64, p.BaseExperience)
}

func TestNormalize_UnitConversion(t *testing.T) {
	p := Normalize(DetailRecord{Weight: 605, Height: 7})

	assert.Equal(t, 60.5, p.WeightKg)
	assert.Equal(t, 0.7, p.HeightM)
}

func TestNormalize_MissingStatsDefaultToZero(t *testing.T) {
	r := createTestDetail()
	r.Stats = []StatDetail{
		{BaseStat: 80, Stat: NamedRef{Name: "attack"}},
		{BaseStat: 12, Stat: NamedRef{Name: "unknown-stat"}},
	}

	p := Normalize(r)
	assert.Equal(t, Stats{Attack: 80}, p.Stats)
}

func TestNormalize_EmptyRecord(t *testing.T) {
	p := Normalize(DetailRecord{})

	assert.Equal(t, Stats{}, p.Stats)
	assert.NotNil(t, p.Types)
	assert.Empty(t, p.Types)
	assert.Equal(t, "", p.PrimaryType())
}

func TestNormalize_FirstStatWins(t *testing.T) {
	r := DetailRecord{Stats: []StatDetail{
		{BaseStat: 10, Stat: NamedRef{Name: "hp"}},
		{BaseStat: 99, Stat: NamedRef{Name: "hp"}},
	}}

	assert.Equal(t, 10, Normalize(r).Stats.HP)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	records := []DetailRecord{{ID: 3}, {ID: 1}, {ID: 2}}

	out := NormalizeAll(records)
	assert.Len(t, out, 3)
	assert.Equal(t, 3, out[0].ID)
	assert.Equal(t, 1, out[1].ID)
	assert.Equal(t, 2, out[2].ID)
}

func TestPokemon_HasType(t *testing.T) {
	p := Pokemon{Types: []string{"poison", "flying"}}

	assert.True(t, p.HasType("flying"))
	assert.True(t, p.HasType("poison"))
	assert.False(t, p.HasType("fly"))
	assert.Equal(t, "poison", p.PrimaryType())
}

func TestPreferences_CloneIsIndependent(t *testing.T) {
	p := Preferences{
		View:          ViewTable,
		Sorting:       []SortSpec{{ID: "name"}},
		ColumnFilters: ColumnFilters{"name": "char"},
	}

	c := p.Clone()
	c.Sorting[0].Desc = true
	c.ColumnFilters["name"] = "bulb"

	assert.False(t, p.Sorting[0].Desc)
	assert.Equal(t, "char", p.ColumnFilters["name"])
}

func TestPreferences_IsFiltered(t *testing.T) {
	assert.False(t, DefaultPreferences().IsFiltered())
	assert.False(t, Preferences{ColumnFilters: ColumnFilters{"name": ""}}.IsFiltered())
	assert.True(t, Preferences{ColumnFilters: ColumnFilters{"types": "fire"}}.IsFiltered())
	assert.True(t, Preferences{Sorting: []SortSpec{{ID: "weight"}}}.IsFiltered())
}
