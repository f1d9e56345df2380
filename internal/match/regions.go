package match

import (
	"sort"
)

// Top-level regions of Uzbekistan as they are keyed in the reference table.
var regionNames = map[ID]string{
	"1":  "Toshkent shahri",
	"2":  "Toshkent viloyati",
	"3":  "Andijon viloyati",
	"4":  "Buxoro viloyati",
	"5":  "Farg'ona viloyati",
	"6":  "Jizzax viloyati",
	"7":  "Xorazm viloyati",
	"8":  "Namangan viloyati",
	"9":  "Navoiy viloyati",
	"10": "Qashqadaryo viloyati",
	"11": "Qoraqalpog'iston Respublikasi",
	"12": "Samarqand viloyati",
	"13": "Sirdaryo viloyati",
	"14": "Surxondaryo viloyati",
}

// Shared borders. Each pair is listed once; NewAdjacency mirrors it.
var regionBorders = map[string][]string{
	"1":  {"2"},
	"2":  {"8", "13"},
	"3":  {"5", "8"},
	"4":  {"7", "9", "10"},
	"5":  {"8"},
	"6":  {"9", "12", "13"},
	"7":  {"11"},
	"9":  {"11", "12"},
	"10": {"12", "14"},
}

var defaultAdjacency = NewAdjacency(regionBorders)

// RegionName returns the display name of a built-in region or "".
func RegionName(id ID) string {
	return regionNames[id]
}

// Adjacency is a symmetric neighbor table. It is read-only once built.
type Adjacency struct {
	neighbors map[ID][]ID
}

// DefaultAdjacency returns the built-in table of Uzbekistan regions.
func DefaultAdjacency() *Adjacency {
	return defaultAdjacency
}

// NewAdjacency builds a table from region -> neighbors pairs. Every pair is
// recorded in both directions; self references and blanks are ignored.
func NewAdjacency(borders map[string][]string) *Adjacency {
	sets := make(map[ID]map[ID]bool)
	link := func(a, b ID) {
		if sets[a] == nil {
			sets[a] = make(map[ID]bool)
		}
		sets[a][b] = true
	}

	for region, neighbors := range borders {
		a := ParseID(region)
		if a == "" {
			continue
		}
		for _, neighbor := range neighbors {
			b := ParseID(neighbor)
			if b == "" || b == a {
				continue
			}
			link(a, b)
			link(b, a)
		}
	}

	adj := &Adjacency{neighbors: make(map[ID][]ID, len(sets))}
	for region, set := range sets {
		list := make([]ID, 0, len(set))
		for id := range set {
			list = append(list, id)
		}
		sort.Slice(list, func(i, j int) bool { return LessID(list[i], list[j]) })
		adj.neighbors[region] = list
	}

	return adj
}

// Adjacent reports whether x and y are distinct, present and share a border.
func (a *Adjacency) Adjacent(x, y ID) bool {
	if a == nil || x == "" || y == "" || x == y {
		return false
	}
	for _, id := range a.neighbors[x] {
		if id == y {
			return true
		}
	}
	return false
}

// Neighbors returns a copy of the neighbors of id in ascending order.
func (a *Adjacency) Neighbors(id ID) []ID {
	if a == nil {
		return nil
	}
	list := a.neighbors[id]
	out := make([]ID, len(list))
	copy(out, list)
	return out
}

// LessID orders numeric ids numerically and everything else lexically.
func LessID(a, b ID) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(id ID) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
