package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/babsant/clean-sanctuary/internal/storage"
)

// GenerateDefaultRooms builds the default named-room list for a home layout:
// kitchen, living room, and entryway first, then bedrooms, then full
// bathrooms, then a half bath when the count has a fractional remainder,
// then a pet area. Every room gets a fresh id.
func GenerateDefaultRooms(bedrooms int, bathrooms float64, hasPets bool) []storage.Room {
	rooms := []storage.Room{
		newRoom(RoomKitchen, "Kitchen"),
		newRoom(RoomLivingRoom, "Living Room"),
		newRoom(RoomEntryway, "Entryway"),
	}

	for i := 0; i < bedrooms; i++ {
		name := "Bedroom"
		if bedrooms > 1 {
			name = fmt.Sprintf("Bedroom %d", i+1)
		}
		rooms = append(rooms, newRoom(RoomBedroom, name))
	}

	full := int(math.Floor(bathrooms))
	for i := 0; i < full; i++ {
		name := "Bathroom"
		if full > 1 {
			name = fmt.Sprintf("Bathroom %d", i+1)
		}
		rooms = append(rooms, newRoom(RoomBathroom, name))
	}
	if bathrooms > float64(full) {
		rooms = append(rooms, newRoom(RoomBathroom, "Half Bath"))
	}

	if hasPets {
		rooms = append(rooms, newRoom(RoomPetArea, "Pet Area"))
	}

	return rooms
}

func newRoom(rt RoomType, name string) storage.Room {
	return storage.Room{
		ID:   uuid.NewString(),
		Type: string(rt),
		Name: name,
	}
}

// EnsureRooms appends any rooms implied by the home's counts that are missing
// from its named-room list. Existing rooms are never removed or renamed, so
// user-entered names and cleaning timestamps survive layout changes.
func EnsureRooms(home *storage.HomeConfig) {
	counts := map[RoomType]int{}
	for _, r := range home.Rooms {
		counts[RoomType(r.Type)]++
	}

	var missing []storage.Room
	appendMissing := func(rt RoomType, want int, name func(i int) string) {
		for i := counts[rt]; i < want; i++ {
			missing = append(missing, newRoom(rt, name(i)))
		}
	}

	appendMissing(RoomKitchen, 1, func(int) string { return "Kitchen" })
	appendMissing(RoomLivingRoom, 1, func(int) string { return "Living Room" })
	appendMissing(RoomEntryway, 1, func(int) string { return "Entryway" })

	appendMissing(RoomBedroom, home.Bedrooms, func(i int) string {
		if home.Bedrooms > 1 {
			return fmt.Sprintf("Bedroom %d", i+1)
		}
		return "Bedroom"
	})

	wantBaths := int(math.Ceil(home.Bathrooms))
	full := int(math.Floor(home.Bathrooms))
	appendMissing(RoomBathroom, wantBaths, func(i int) string {
		if i >= full {
			return "Half Bath"
		}
		if full > 1 {
			return fmt.Sprintf("Bathroom %d", i+1)
		}
		return "Bathroom"
	})

	if home.HasPets {
		appendMissing(RoomPetArea, 1, func(int) string { return "Pet Area" })
	}

	home.Rooms = append(home.Rooms, missing...)
}

// FindRoom returns the room with the given id, or nil.
func FindRoom(home *storage.HomeConfig, roomID string) *storage.Room {
	for i := range home.Rooms {
		if home.Rooms[i].ID == roomID {
			return &home.Rooms[i]
		}
	}
	return nil
}
