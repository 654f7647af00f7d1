package domain

import "testing"

func newTestWorld(w, h int) *GameWorld {
	world := &GameWorld{
		Width:          w,
		Height:         h,
		Map:            make([][]Tile, h),
		SpatialHash:    make(map[int][]*Entity),
		EntityRegistry: make(map[string]*Entity),
		ItemRegistry:   make(map[string]*Entity),
	}
	for y := 0; y < h; y++ {
		world.Map[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			world.Map[y][x] = Tile{X: x, Y: y}
		}
	}
	return world
}

func TestGameWorld_AddRemoveEntity(t *testing.T) {
	world := newTestWorld(10, 10)

	e := &Entity{
		ID:  "e1",
		Pos: Position{X: 5, Y: 5},
	}

	// Test Add
	world.AddEntity(e)
	world.RegisterEntity(e)

	if len(world.SpatialHash) == 0 {
		t.Error("SpatialHash should not be empty after adding entity")
	}

	retrieved := world.GetEntity("e1")
	if retrieved == nil {
		t.Error("GetEntity returned nil")
	}
	if retrieved != e {
		t.Errorf("GetEntity returned wrong entity: got %v want %v", retrieved, e)
	}

	// Test Remove
	world.RemoveEntity(e)
	world.UnregisterEntity("e1")

	if world.GetEntity("e1") != nil {
		t.Error("Entity should be nil after removal")
	}
}

func TestGameWorld_PlaceAndTakeItem(t *testing.T) {
	world := newTestWorld(10, 10)

	item := &Entity{
		ID:   "torch_1",
		Type: EntityTypeItem,
		Item: &ItemComponent{Active: true, LightStrength: 100},
	}

	if err := world.PlaceItem(item, 3, 4); err != nil {
		t.Fatalf("PlaceItem failed: %v", err)
	}
	if got := world.ItemAt(3, 4); got != item {
		t.Errorf("ItemAt returned wrong item: got %v want %v", got, item)
	}

	// Вторая вещь в ту же клетку не помещается
	other := &Entity{ID: "rock_1", Type: EntityTypeItem, Item: &ItemComponent{}}
	if err := world.PlaceItem(other, 3, 4); err == nil {
		t.Error("PlaceItem should fail on occupied tile")
	}

	taken := world.TakeItemAt(3, 4)
	if taken != item {
		t.Errorf("TakeItemAt returned wrong item: got %v want %v", taken, item)
	}
	if world.ItemAt(3, 4) != nil {
		t.Error("Tile should be empty after TakeItemAt")
	}
}

func TestGameWorld_OutOfBounds(t *testing.T) {
	world := newTestWorld(5, 5)

	if world.TileAt(-1, 0) != nil {
		t.Error("TileAt should return nil for negative coordinates")
	}
	if world.TileAt(5, 5) != nil {
		t.Error("TileAt should return nil beyond map edge")
	}
	if world.GetEntitiesAt(99, 99) != nil {
		t.Error("GetEntitiesAt should return nil out of bounds")
	}

	e := &Entity{ID: "e1", Pos: Position{X: 2, Y: 2}}
	world.AddEntity(e)
	if err := world.UpdateEntityPos(e, 7, 7); err == nil {
		t.Error("UpdateEntityPos should fail out of bounds")
	}
}

func TestRankField_Window(t *testing.T) {
	f := &RankField{}

	f.Set(FieldHalfWidth, FieldHalfWidth, 1)
	if f.At(FieldHalfWidth, FieldHalfWidth) != 1 {
		t.Error("origin rank should be 1 after Set")
	}

	// Чтение за границей окна безопасно и дает 0
	if f.At(-1, 0) != 0 || f.At(0, FieldSize) != 0 {
		t.Error("At outside the window must return 0")
	}

	f.Reset()
	if f.At(FieldHalfWidth, FieldHalfWidth) != 0 {
		t.Error("Reset should clear all ranks")
	}
}
