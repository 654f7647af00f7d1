package systems

import (
	"testing"

	"percept-server/internal/domain"
)

// litWorld - открытая площадка с заданным динамическим светом на всех клетках
func litWorld(w, h, light int) *domain.GameWorld {
	world := newOpenWorld(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			world.Map[y][x].Light = light
		}
	}
	return world
}

func TestCanPerceiveEntity_OpenField(t *testing.T) {
	// Площадка 5x5, свет 64, восприятие 0, стелс 0, цель стоит.
	// d0 = 4, стелс 4*(0+20)/20 = 4, штраф темноты 0 -> стоимость 4.
	world := litWorld(5, 5, 64)
	cache := NewFieldCache(world)

	observer := spawn(world, "observer", 1, 2)
	target := spawn(world, "target", 3, 2)

	if got := CanPerceiveEntity(cache, observer, target); got != 4 {
		t.Errorf("open field cost: got %d, want 4", got)
	}
	// Повторный вызов идет через кэш и дает тот же ответ
	if got := CanPerceiveEntity(cache, observer, target); got != 4 {
		t.Errorf("cached cost: got %d, want 4", got)
	}
}

func TestCanPerceiveEntity_WallBlocks(t *testing.T) {
	// Та же площадка, но глухая стена между наблюдателем и целью,
	// диагонального обхода нет - колонка перекрыта целиком
	world := litWorld(5, 5, 64)
	for y := 0; y < 5; y++ {
		world.Map[y][2].SightBlock = true
	}
	cache := NewFieldCache(world)

	observer := spawn(world, "observer", 1, 2)
	target := spawn(world, "target", 3, 2)
	target.Percept.Perception = 200 // навыки не пробивают стену

	if got := CanPerceiveEntity(cache, observer, target); got != 0 {
		t.Errorf("walled-off target: got %d, want 0", got)
	}
}

func TestCanPerceiveEntity_Self(t *testing.T) {
	world := litWorld(5, 5, 64)
	cache := NewFieldCache(world)
	e := spawn(world, "solo", 2, 2)

	if got := CanPerceiveEntity(cache, e, e); got != 1 {
		t.Errorf("self visibility: got %d, want 1", got)
	}
}

func TestCanPerceiveEntity_Rejections(t *testing.T) {
	world := litWorld(10, 10, 64)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 1, 1)

	dead := spawn(world, "dead", 3, 1)
	dead.Stats.IsDead = true
	if got := CanPerceiveEntity(cache, observer, dead); got != 0 {
		t.Errorf("dead target: got %d, want 0", got)
	}

	corpse := spawn(world, "corpse", 4, 1)
	corpse.Percept.IsCorpse = true
	if got := CanPerceiveEntity(cache, observer, corpse); got != 0 {
		t.Errorf("corpse target: got %d, want 0", got)
	}

	ghost := spawn(world, "ghost", 5, 1)
	ghost.Percept.Invisible = 3
	if got := CanPerceiveEntity(cache, observer, ghost); got != 0 {
		t.Errorf("invisible target: got %d, want 0", got)
	}

	// Прозрение нужного уровня пробивает невидимость
	observer.Percept.SeeInvisible = 3
	if got := CanPerceiveEntity(cache, observer, ghost); got == 0 {
		t.Error("see-invisible observer must perceive the ghost")
	}
}

func TestCanPerceiveEntity_StealthAndMoveMode(t *testing.T) {
	world := litWorld(20, 20, 64)
	cache := NewFieldCache(world)

	observer := spawn(world, "observer", 2, 10)
	sneak := spawn(world, "sneak", 8, 10) // d0 = 36
	sneak.Percept.Stealth = 40

	// Стоя: 36*(40+20)/20 = 108
	sneak.Percept.MoveMode = domain.MoveModeIdle
	if got := CanPerceiveEntity(cache, observer, sneak); got != 108 {
		t.Errorf("idle sneak cost: got %d, want 108", got)
	}

	// Шагом: 36*(40+50)/50 = 64
	sneak.Percept.MoveMode = domain.MoveModeWalk
	if got := CanPerceiveEntity(cache, observer, sneak); got != 64 {
		t.Errorf("walking sneak cost: got %d, want 64", got)
	}

	// Бегом стелс почти не работает: 36*(40+100)/100 = 50
	sneak.Percept.MoveMode = domain.MoveModeRun
	if got := CanPerceiveEntity(cache, observer, sneak); got != 50 {
		t.Errorf("running sneak cost: got %d, want 50", got)
	}
}

func TestCanPerceiveEntity_DarknessPenaltyAndInfrared(t *testing.T) {
	world := litWorld(20, 20, 0) // кромешная тьма
	cache := NewFieldCache(world)

	observer := spawn(world, "observer", 2, 10)
	target := spawn(world, "target", 4, 10) // d0 = 4

	// Тьма: 4 + (64-0)*2 = 132
	if got := CanPerceiveEntity(cache, observer, target); got != 132 {
		t.Errorf("dark field cost: got %d, want 132", got)
	}

	// Инфразрение игнорирует штраф темноты целиком
	observer.Percept.Infrared = true
	if got := CanPerceiveEntity(cache, observer, target); got != 4 {
		t.Errorf("infrared cost: got %d, want 4", got)
	}
}

func TestCanPerceiveEntity_CostThreshold(t *testing.T) {
	world := litWorld(30, 30, 0)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 2, 15)

	// d0 = 64: 64 + 128 = 192, на грани, но воспринимаема
	near := spawn(world, "near", 10, 15)
	if got := CanPerceiveEntity(cache, observer, near); got != 192 {
		t.Errorf("borderline cost: got %d, want 192", got)
	}

	// d0 = 81: 81 + 128 = 209 > 200 - отсечение
	far := spawn(world, "far", 11, 15)
	if got := CanPerceiveEntity(cache, observer, far); got != 0 {
		t.Errorf("over-threshold cost: got %d, want 0", got)
	}
}

func TestCanPerceiveEntity_CloseRangeClamp(t *testing.T) {
	world := litWorld(10, 10, 0) // тьма: штраф 128
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 4, 4)
	target := spawn(world, "target", 5, 4) // d0 = 1 < 3

	// 1 + 128 = 129, но в упор потолок 70
	if got := CanPerceiveEntity(cache, observer, target); got != 70 {
		t.Errorf("close range cost: got %d, want 70", got)
	}
}

func TestCanPerceiveEntity_PerceptionFloor(t *testing.T) {
	world := litWorld(10, 10, 0)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 2, 4)
	observer.Percept.Perception = 160
	target := spawn(world, "target", 6, 4) // d0 = 16

	// Свет 0, но восприятие > 150 дает пол 1:
	// 16 - 320 + (64-1)*2 = -178 -> меньше единицы -> 1
	if got := CanPerceiveEntity(cache, observer, target); got != 1 {
		t.Errorf("master perceiver cost: got %d, want 1", got)
	}
}

func TestCanPerceiveEntity_DistanceCap(t *testing.T) {
	world := litWorld(80, 10, 64)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 2, 5)
	target := spawn(world, "target", 70, 5) // d0 = 4624 > 1000

	if got := CanPerceiveEntity(cache, observer, target); got != 0 {
		t.Errorf("beyond distance cap: got %d, want 0", got)
	}
}

func TestCanPerceiveItem(t *testing.T) {
	world := litWorld(10, 10, 64)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 1, 2)

	coin := &domain.Entity{
		ID:   "coin_1",
		Type: domain.EntityTypeItem,
		Item: &domain.ItemComponent{},
	}
	if err := world.PlaceItem(coin, 3, 2); err != nil {
		t.Fatalf("PlaceItem failed: %v", err)
	}

	// d0 = 4, офсет 50, света достаточно: 4 + 50 = 54
	if got := CanPerceiveItem(cache, observer, coin); got != 54 {
		t.Errorf("coin cost: got %d, want 54", got)
	}

	// Спрятанный предмет добавляет свою силу скрытности
	coin.Item.Hidden = true
	coin.Item.HiddenStrength = 80
	if got := CanPerceiveItem(cache, observer, coin); got != 134 {
		t.Errorf("hidden coin cost: got %d, want 134", got)
	}

	// Слишком хорошо спрятан - не видим
	coin.Item.HiddenStrength = 200
	if got := CanPerceiveItem(cache, observer, coin); got != 0 {
		t.Errorf("deeply hidden coin: got %d, want 0", got)
	}
}

func TestCanPerceiveItem_DarknessTriplePenalty(t *testing.T) {
	world := litWorld(10, 10, 0)
	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 1, 2)

	coin := &domain.Entity{
		ID:   "coin_1",
		Type: domain.EntityTypeItem,
		Item: &domain.ItemComponent{},
	}
	if err := world.PlaceItem(coin, 4, 2); err != nil {
		t.Fatalf("PlaceItem failed: %v", err)
	}

	// d0 = 9: 9 + 50 + (64-0)*3 = 251 > 200 - предмет в темноте не найти
	if got := CanPerceiveItem(cache, observer, coin); got != 0 {
		t.Errorf("item in darkness: got %d, want 0", got)
	}
}

func TestCanReach(t *testing.T) {
	world := newOpenWorld(20, 20)
	// Непроходимая, но прозрачная река с бродом
	for y := 0; y < 20; y++ {
		world.Map[y][10].MoveBlock = true
	}
	world.Map[5][10].MoveBlock = false // брод

	cache := NewFieldCache(world)

	from := domain.Position{X: 5, Y: 5}
	if !CanReach(cache, from, domain.Position{X: 14, Y: 5}) {
		t.Error("ford on the same row must make the far bank reachable")
	}
	if CanReach(cache, from, domain.Position{X: 14, Y: 17}) {
		t.Error("far corner across the river must be unreachable within the wave")
	}
}

func TestCanPerceiveEntity_DaylightBlend(t *testing.T) {
	world := newOpenWorld(20, 20)
	world.GlobalDaylight = 128
	// Цель в помещении с коэффициентом просачивания 128/256
	tile := &world.Map[10][6]
	tile.Indoor = true
	tile.Daylight = 128

	cache := NewFieldCache(world)
	observer := spawn(world, "observer", 4, 10)
	target := spawn(world, "target", 6, 10) // d0 = 4

	// Эффективный фон в помещении: 128*128/256 = 64 -> штрафа нет
	if got := CanPerceiveEntity(cache, observer, target); got != 4 {
		t.Errorf("indoor daylight blend cost: got %d, want 4", got)
	}

	// Наглухо закрытое помещение темное даже днем:
	// 4 + (64-0)*2 = 132
	tile.Daylight = 0
	if got := CanPerceiveEntity(cache, observer, target); got != 132 {
		t.Errorf("sealed indoor cost: got %d, want 132", got)
	}
}
