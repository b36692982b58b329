package engine

import (
	"testing"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

func roomTypes(rooms []storage.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.Type
	}
	return out
}

func TestGenerateDefaultRooms(t *testing.T) {
	rooms := GenerateDefaultRooms(2, 1.5, true)

	wantTypes := []string{
		string(RoomKitchen), string(RoomLivingRoom), string(RoomEntryway),
		string(RoomBedroom), string(RoomBedroom),
		string(RoomBathroom), string(RoomBathroom),
		string(RoomPetArea),
	}
	got := roomTypes(rooms)
	if len(got) != len(wantTypes) {
		t.Fatalf("room count=%d, want %d (%v)", len(got), len(wantTypes), got)
	}
	for i := range wantTypes {
		if got[i] != wantTypes[i] {
			t.Fatalf("room[%d]=%s, want %s", i, got[i], wantTypes[i])
		}
	}

	if rooms[3].Name != "Bedroom 1" || rooms[4].Name != "Bedroom 2" {
		t.Fatalf("bedroom names=%q,%q, want numbered", rooms[3].Name, rooms[4].Name)
	}
	if rooms[6].Name != "Half Bath" {
		t.Fatalf("fractional bathroom name=%q, want Half Bath", rooms[6].Name)
	}

	seen := map[string]bool{}
	for _, r := range rooms {
		if r.ID == "" {
			t.Fatalf("room %q has empty id", r.Name)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate room id %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestGenerateDefaultRoomsStudio(t *testing.T) {
	rooms := GenerateDefaultRooms(0, 1, false)
	got := roomTypes(rooms)
	want := []string{string(RoomKitchen), string(RoomLivingRoom), string(RoomEntryway), string(RoomBathroom)}
	if len(got) != len(want) {
		t.Fatalf("studio rooms=%v, want %v", got, want)
	}
	if rooms[3].Name != "Bathroom" {
		t.Fatalf("single bathroom name=%q, want Bathroom", rooms[3].Name)
	}
}

func TestEnsureRoomsAppendsWithoutTouchingExisting(t *testing.T) {
	home := storage.HomeConfig{Bedrooms: 1, Bathrooms: 1}
	home.Rooms = GenerateDefaultRooms(1, 1, false)

	// User renames a room; the name must survive layout changes.
	home.Rooms[0].Name = "Galley"
	originalIDs := map[string]string{}
	for _, r := range home.Rooms {
		originalIDs[r.ID] = r.Name
	}

	home.Bedrooms = 2
	home.HasPets = true
	EnsureRooms(&home)

	for _, r := range home.Rooms {
		if name, ok := originalIDs[r.ID]; ok && name != r.Name {
			t.Fatalf("existing room %s renamed from %q to %q", r.ID, name, r.Name)
		}
	}

	counts := map[string]int{}
	for _, r := range home.Rooms {
		counts[r.Type]++
	}
	if counts[string(RoomBedroom)] != 2 {
		t.Fatalf("bedrooms=%d, want 2", counts[string(RoomBedroom)])
	}
	if counts[string(RoomPetArea)] != 1 {
		t.Fatalf("pet areas=%d, want 1", counts[string(RoomPetArea)])
	}
	if home.Rooms[0].Name != "Galley" {
		t.Fatalf("renamed room lost its name: %q", home.Rooms[0].Name)
	}

	// Running again changes nothing.
	before := len(home.Rooms)
	EnsureRooms(&home)
	if len(home.Rooms) != before {
		t.Fatalf("EnsureRooms not idempotent: %d -> %d rooms", before, len(home.Rooms))
	}
}

func TestEnsureRoomsNeverRemoves(t *testing.T) {
	home := storage.HomeConfig{Bedrooms: 3, Bathrooms: 2}
	home.Rooms = GenerateDefaultRooms(3, 2, false)
	before := len(home.Rooms)

	// Shrinking counts must not delete rooms.
	home.Bedrooms = 1
	home.Bathrooms = 1
	EnsureRooms(&home)
	if len(home.Rooms) != before {
		t.Fatalf("rooms removed on count decrease: %d -> %d", before, len(home.Rooms))
	}
}
