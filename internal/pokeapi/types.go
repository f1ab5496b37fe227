package pokeapi

// Ref is an opaque reference to a remote resource as it appears in
// listing responses.
type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listResponse is the shape of the bulk listing endpoint.
type listResponse struct {
	Results []Ref `json:"results"`
}

// Pokemon is one decoded catalog entry. ID is stable, unique and assigned
// by the remote service. Everything beyond ID and Name is carried as
// payload for display and never interpreted by the aggregation layer.
type Pokemon struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	Types     []TypeRef `json:"types"`
	Sprites   Sprites   `json:"sprites"`
	Stats     []Stat    `json:"stats"`
	Abilities []Ability `json:"abilities"`
}

// TypeName returns the name of the slot-n type, or "" if absent.
func (p Pokemon) TypeName(slot int) string {
	for _, t := range p.Types {
		if t.Slot == slot {
			return t.Type.Name
		}
	}
	return ""
}

// HasType reports whether the Pokemon has the named type.
func (p Pokemon) HasType(name string) bool {
	for _, t := range p.Types {
		if t.Type.Name == name {
			return true
		}
	}
	return false
}

// ImageURL returns the best available artwork URL.
func (p Pokemon) ImageURL() string {
	if p.Sprites.Other != nil && p.Sprites.Other.OfficialArtwork.FrontDefault != "" {
		return p.Sprites.Other.OfficialArtwork.FrontDefault
	}
	return p.Sprites.FrontDefault
}

// TypeRef is a slot-ordered type attached to a Pokemon.
type TypeRef struct {
	Slot int  `json:"slot"`
	Type Type `json:"type"`
}

// Type is a named Pokemon type.
type Type struct {
	Name string `json:"name"`
}

// AllTypes lists every type name, in Pokedex display order.
var AllTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// Sprites holds artwork URLs for a Pokemon.
type Sprites struct {
	FrontDefault string        `json:"front_default"`
	BackDefault  string        `json:"back_default"`
	FrontShiny   string        `json:"front_shiny"`
	BackShiny    string        `json:"back_shiny"`
	Other        *OtherSprites `json:"other"`
}

// OtherSprites wraps the non-game sprite collections.
type OtherSprites struct {
	OfficialArtwork OfficialArtwork `json:"official-artwork"`
}

// OfficialArtwork is the high-resolution artwork set.
type OfficialArtwork struct {
	FrontDefault string `json:"front_default"`
}

// Stat is one base stat value.
type Stat struct {
	BaseStat int      `json:"base_stat"`
	Stat     StatInfo `json:"stat"`
}

// StatInfo names a stat.
type StatInfo struct {
	Name string `json:"name"`
}

// Ability is one ability slot.
type Ability struct {
	Ability  AbilityInfo `json:"ability"`
	IsHidden bool        `json:"is_hidden"`
}

// AbilityInfo names an ability.
type AbilityInfo struct {
	Name string `json:"name"`
}

// speciesResponse is the slice of the species endpoint we care about:
// the pointer to the evolution chain resource.
type speciesResponse struct {
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// EvolutionChain is the dependent record attached to a Pokemon: a tree of
// linked forms with optional transition metadata on each edge.
type EvolutionChain struct {
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node in an evolution tree.
type ChainLink struct {
	Species          Ref                `json:"species"`
	EvolvesTo        []ChainLink        `json:"evolves_to"`
	EvolutionDetails []EvolutionDetails `json:"evolution_details"`
}

// EvolutionDetails describes how an evolution is triggered.
type EvolutionDetails struct {
	MinLevel *int  `json:"min_level"`
	Trigger  Type  `json:"trigger"`
	Item     *Type `json:"item"`
}
