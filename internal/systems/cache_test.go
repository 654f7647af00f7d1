package systems

import (
	"testing"

	"percept-server/internal/domain"
)

func TestFieldCache_HitAndMiss(t *testing.T) {
	world := newOpenWorld(41, 41)
	cache := NewFieldCache(world)
	e := spawn(world, "watcher", 20, 20)

	f1 := cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if e.Vision == nil {
		t.Fatal("vision slot must be created lazily on first query")
	}
	if e.Vision.Origin != e.Pos {
		t.Errorf("slot origin: got %v, want %v", e.Vision.Origin, e.Pos)
	}

	// Тот же origin - тот же буфер, без перестройки
	f2 := cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if f1 != f2 {
		t.Error("same-origin query must reuse the cached buffer")
	}

	// Сдвиг origin - промах и новое окно
	newPos := domain.Position{X: 22, Y: 20}
	cache.FieldFor(e, newPos, domain.PerceptionFieldRadius, domain.FieldSight)
	if e.Vision.Origin != newPos {
		t.Errorf("slot origin after move: got %v, want %v", e.Vision.Origin, newPos)
	}
}

func TestFieldCache_KindMismatchIsMiss(t *testing.T) {
	world := newOpenWorld(41, 41)
	// Прозрачная, но непроходимая решетка поперек карты
	for y := 0; y < 41; y++ {
		world.Map[y][25].MoveBlock = true
	}
	cache := NewFieldCache(world)
	e := spawn(world, "watcher", 20, 20)
	target := domain.Position{X: 28, Y: 20}

	sight := cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(sight, e.Pos, target) == 0 {
		t.Fatal("grate is transparent, sight must pass")
	}

	reach := cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldReach)
	if QueryField(reach, e.Pos, target) != 0 {
		t.Error("grate is impassable, reach must stop; stale sight field was served")
	}
}

func TestFieldCache_ResetGO(t *testing.T) {
	world := newOpenWorld(60, 60)
	cache := NewFieldCache(world)

	near := spawn(world, "near", 30, 30)
	far := spawn(world, "far", 55, 55)

	cache.FieldFor(near, near.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	cache.FieldFor(far, far.Pos, domain.PerceptionFieldRadius, domain.FieldSight)

	// Дверь захлопнулась в (32, 30)
	cache.ResetGO(32, 30)

	if near.Vision.Origin != domain.NoOrigin {
		t.Error("entity within the reset radius must be invalidated")
	}
	if far.Vision.Origin == domain.NoOrigin {
		t.Error("entity far outside the reset radius must keep its cache")
	}

	// Следующий запрос перестраивает окно с нуля
	cache.FieldFor(near, near.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if near.Vision.Origin != near.Pos {
		t.Error("query after invalidation must rebuild and restore the origin")
	}
}

func TestFieldCache_ResetGO_SeesNewWalls(t *testing.T) {
	world := newOpenWorld(41, 41)
	cache := NewFieldCache(world)
	e := spawn(world, "watcher", 20, 20)
	target := domain.Position{X: 24, Y: 20}

	f := cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(f, e.Pos, target) == 0 {
		t.Fatal("open world, target must be visible")
	}

	// Выросла стена. Без ResetGO кэш обязан отдавать старое поле,
	// с ResetGO - увидеть стену.
	for y := 15; y <= 25; y++ {
		world.Map[y][22].SightBlock = true
	}

	f = cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(f, e.Pos, target) == 0 {
		t.Error("stale cache expected before ResetGO")
	}

	cache.ResetGO(22, 20)
	f = cache.FieldFor(e, e.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(f, e.Pos, target) != 0 {
		t.Error("after ResetGO the rebuilt field must respect the new wall")
	}
}
