// Package filter provides pure filter functions for catalog entries.
// All functions are simple: []Pokemon in, []Pokemon out. No side effects.
// Filters compose by conjunction and commute with each other.
package filter

import (
	"strconv"
	"strings"

	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// generationRanges maps generation number (1-based) to the inclusive id
// range introduced in that generation.
var generationRanges = [][2]int{
	{1, 151},    // Gen 1
	{152, 251},  // Gen 2
	{252, 386},  // Gen 3
	{387, 493},  // Gen 4
	{494, 649},  // Gen 5
	{650, 721},  // Gen 6
	{722, 809},  // Gen 7
	{810, 905},  // Gen 8
	{906, 1008}, // Gen 9
}

// GenerationCount is the number of known generations.
var GenerationCount = len(generationRanges)

// BySearch keeps entries whose name or decimal id contains the query,
// case-insensitively. An empty query keeps everything.
func BySearch(pokemons []pokeapi.Pokemon, query string) []pokeapi.Pokemon {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return pokemons
	}

	result := make([]pokeapi.Pokemon, 0, len(pokemons))
	for _, p := range pokemons {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strconv.Itoa(p.ID), query) {
			result = append(result, p)
		}
	}
	return result
}

// ByType keeps entries that have the named type. An empty name keeps
// everything.
func ByType(pokemons []pokeapi.Pokemon, typeName string) []pokeapi.Pokemon {
	if typeName == "" {
		return pokemons
	}

	result := make([]pokeapi.Pokemon, 0, len(pokemons))
	for _, p := range pokemons {
		if p.HasType(typeName) {
			result = append(result, p)
		}
	}
	return result
}

// ByGeneration keeps entries whose id falls in the given generation's
// range. gen 0 keeps everything; an out-of-range gen keeps nothing.
func ByGeneration(pokemons []pokeapi.Pokemon, gen int) []pokeapi.Pokemon {
	if gen == 0 {
		return pokemons
	}
	if gen < 1 || gen > GenerationCount {
		return []pokeapi.Pokemon{}
	}

	lo, hi := generationRanges[gen-1][0], generationRanges[gen-1][1]
	return ByRange(pokemons, lo, hi)
}

// ByRange keeps entries with lo <= id <= hi.
func ByRange(pokemons []pokeapi.Pokemon, lo, hi int) []pokeapi.Pokemon {
	result := make([]pokeapi.Pokemon, 0, len(pokemons))
	for _, p := range pokemons {
		if p.ID >= lo && p.ID <= hi {
			result = append(result, p)
		}
	}
	return result
}

// Favorites keeps entries whose id is in the favorite set.
func Favorites(pokemons []pokeapi.Pokemon, favs map[int]bool) []pokeapi.Pokemon {
	result := make([]pokeapi.Pokemon, 0, len(pokemons))
	for _, p := range pokemons {
		if favs[p.ID] {
			result = append(result, p)
		}
	}
	return result
}
