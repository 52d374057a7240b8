// Package foods ships the static food → kcal-per-unit lookup table the
// meal form searches before logging an entry. The table is read-only; the
// meal log itself never consults it, it stores whatever calorie figure it
// is handed.
package foods

import (
	"embed"
	"encoding/json"
	"sort"
	"strings"
)

//go:embed foods.json
var dataFS embed.FS

var table = load()

func load() map[string]int {
	data, err := dataFS.ReadFile("foods.json")
	if err != nil {
		panic("foods: missing embedded table: " + err.Error())
	}
	var t map[string]int
	if err := json.Unmarshal(data, &t); err != nil {
		panic("foods: corrupt embedded table: " + err.Error())
	}
	return t
}

// Food is one lookup result.
type Food struct {
	Name     string
	Calories int // kcal per unit serving
}

// Lookup returns the per-unit calories for an exact name.
func Lookup(name string) (int, bool) {
	cal, ok := table[name]
	return cal, ok
}

// Names returns every known food name, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns foods whose name contains the query, case-insensitive,
// sorted by name. An empty query matches nothing.
func Search(query string) []Food {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []Food
	for name, cal := range table {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, Food{Name: name, Calories: cal})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
