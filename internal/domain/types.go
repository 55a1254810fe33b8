// Package domain defines the catalog types shared by the fetch pipeline, the
// preference store and the table engine.
// Raw types mirror the PokeAPI payloads; Pokemon is the display-ready form.
package domain

// ItemReference is one entry of the catalog index (GET /pokemon?limit=N).
type ItemReference struct {
	Name string `json:"name"` // Creature name
	URL  string `json:"url"`  // Absolute URL of the detail resource
}

// DetailRecord is the full record as returned by the detail endpoint.
// Height and weight are in tenth units (decimetres, hectograms).
type DetailRecord struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Height         int          `json:"height"`
	Weight         int          `json:"weight"`
	BaseExperience int          `json:"base_experience"`
	Sprites        Sprites      `json:"sprites"`
	Stats          []StatDetail `json:"stats"`
	Types          []TypeDetail `json:"types"`
}

// Sprites holds the image references of a detail record.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// StatDetail is one (statName, baseValue) pair of a detail record.
type StatDetail struct {
	BaseStat int      `json:"base_stat"`
	Stat     NamedRef `json:"stat"`
}

// TypeDetail is one category tag of a detail record.
type TypeDetail struct {
	Slot int      `json:"slot"`
	Type NamedRef `json:"type"`
}

// NamedRef is the {name, url} pair PokeAPI uses for nested resources.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Stats is the flattened set of base stats. Every field is always present.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Pokemon is a normalized, display-ready catalog record.
type Pokemon struct {
	ID             int      `json:"id"`             // Unique, stable row key
	Name           string   `json:"name"`           // Display name
	WeightKg       float64  `json:"weightKg"`       // Raw weight / 10
	HeightM        float64  `json:"heightM"`        // Raw height / 10
	Stats          Stats    `json:"stats"`          // Flattened base stats
	Types          []string `json:"types"`          // Category tags in source order
	SpriteURL      string   `json:"spriteUrl"`      // Front sprite image URL
	BaseExperience int      `json:"baseExperience"` // Carried over from the raw record
}

// PrimaryType returns the first type tag, or "" when there is none.
func (p Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// HasType reports whether t is one of the record's type tags (exact match).
func (p Pokemon) HasType(t string) bool {
	for _, typ := range p.Types {
		if typ == t {
			return true
		}
	}
	return false
}

// Stat names as they appear in the raw stat list.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// Types lists the creature types offered by the type filter, in display order.
var Types = []string{
	"normal",
	"fire",
	"water",
	"electric",
	"grass",
	"ice",
	"fighting",
	"poison",
	"ground",
	"flying",
	"psychic",
	"bug",
	"rock",
	"ghost",
	"dragon",
	"dark",
	"steel",
	"fairy",
}
