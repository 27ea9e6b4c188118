// Package inventory - Device tally by catalog assembly and room
// Line items are resolved against the catalog once, then counted by keyword
// over the resolved assembly name. Compliance and sanity rules read from here.
package inventory

import (
	"strings"

	"sparkyestimate/core/determinism"
	"sparkyestimate/core/matcher"
	"sparkyestimate/core/types"
)

// RoomType is a coarse room classification
type RoomType string

const (
	RoomBedroom  RoomType = "bedroom"
	RoomBathroom RoomType = "bathroom"
	RoomKitchen  RoomType = "kitchen"
	RoomGarage   RoomType = "garage"
	RoomLaundry  RoomType = "laundry"
	RoomMudroom  RoomType = "mudroom"
	RoomOther    RoomType = "other"
)

// IsWet reports whether the room needs GFCI protection
func (r RoomType) IsWet() bool {
	switch r {
	case RoomBathroom, RoomKitchen, RoomGarage, RoomLaundry, RoomMudroom:
		return true
	default:
		return false
	}
}

// roomKeywords is checked in order; the first hit wins
var roomKeywords = []struct {
	keyword string
	room    RoomType
}{
	{"bedroom", RoomBedroom},
	{"ensuite", RoomBathroom},
	{"powder", RoomBathroom},
	{"bath", RoomBathroom},
	{"washroom", RoomBathroom},
	{"kitchen", RoomKitchen},
	{"garage", RoomGarage},
	{"laundry", RoomLaundry},
	{"mudroom", RoomMudroom},
}

// ClassifyRoom derives the room type from a room name
func ClassifyRoom(name string) RoomType {
	n := strings.ToLower(name)
	for _, rk := range roomKeywords {
		if strings.Contains(n, rk.keyword) {
			return rk.room
		}
	}
	return RoomOther
}

// Room is a named room found on the estimate
type Room struct {
	Name string   `json:"name"`
	Type RoomType `json:"type"`
}

// Entry is one line item after catalog resolution
type Entry struct {
	DeviceType string               `json:"device_type"`
	Assembly   string               `json:"assembly,omitempty"`
	Category   types.DeviceCategory `json:"category"`
	Room       string               `json:"room,omitempty"`
	Quantity   int                  `json:"quantity"`
}

// Label is the resolved assembly name, or the raw device type when unmatched
func (e Entry) Label() string {
	if e.Assembly != "" {
		return e.Assembly
	}
	return e.DeviceType
}

// Inventory is the resolved device tally of an estimate
type Inventory struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Tally resolves every line item against the catalog
func Tally(items []types.LineItem, catalog []types.CatalogAssembly) *Inventory {
	inv := &Inventory{Entries: make([]Entry, 0, len(items))}
	for _, item := range items {
		e := Entry{
			DeviceType: item.DeviceType,
			Category:   types.CategorySpecialty,
			Room:       strings.TrimSpace(item.Room),
			Quantity:   item.Quantity,
		}
		if a := matcher.Resolve(item.DeviceType, catalog); a != nil {
			e.Assembly = a.Name
			if a.Category != "" {
				e.Category = a.Category
			}
		}
		inv.Entries = append(inv.Entries, e)
		inv.Total += item.Quantity
	}
	return inv
}

// Count sums quantities of entries whose label contains any keyword
func (inv *Inventory) Count(keywords ...string) int {
	return inv.countWhere(func(e Entry) bool { return labelHas(e, keywords) })
}

// CountExcluding is Count without entries whose label contains any of exclude
func (inv *Inventory) CountExcluding(keywords, exclude []string) int {
	return inv.countWhere(func(e Entry) bool {
		return labelHas(e, keywords) && !labelHas(e, exclude)
	})
}

// CountInRoom is Count restricted to one room
func (inv *Inventory) CountInRoom(room string, keywords ...string) int {
	return inv.countWhere(func(e Entry) bool {
		return strings.EqualFold(e.Room, room) && labelHas(e, keywords)
	})
}

// CountCategory sums quantities of one device category
func (inv *Inventory) CountCategory(category types.DeviceCategory) int {
	return inv.countWhere(func(e Entry) bool { return e.Category == category })
}

// ByLabel sums quantities per label, sorted by label
func (inv *Inventory) ByLabel() []Entry {
	totals := make(map[string]int)
	for _, e := range inv.Entries {
		totals[e.Label()] += e.Quantity
	}
	out := make([]Entry, 0, len(totals))
	for _, label := range determinism.SortedKeys(totals) {
		out = append(out, Entry{DeviceType: label, Quantity: totals[label]})
	}
	return out
}

// Rooms lists distinct named rooms in name order
func (inv *Inventory) Rooms() []Room {
	seen := make(map[string]Room)
	for _, e := range inv.Entries {
		if e.Room == "" {
			continue
		}
		key := strings.ToLower(e.Room)
		if _, ok := seen[key]; !ok {
			seen[key] = Room{Name: e.Room, Type: ClassifyRoom(e.Room)}
		}
	}
	rooms := make([]Room, 0, len(seen))
	for _, key := range determinism.SortedKeys(seen) {
		rooms = append(rooms, seen[key])
	}
	return rooms
}

// RoomsOfType lists rooms of one type
func (inv *Inventory) RoomsOfType(t RoomType) []Room {
	var out []Room
	for _, r := range inv.Rooms() {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func (inv *Inventory) countWhere(pred func(Entry) bool) int {
	n := 0
	for _, e := range inv.Entries {
		if pred(e) {
			n += e.Quantity
		}
	}
	return n
}

func labelHas(e Entry, keywords []string) bool {
	label := strings.ToLower(e.Label())
	for _, k := range keywords {
		if strings.Contains(label, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
