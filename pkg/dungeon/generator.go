package dungeon

import (
	"math/rand"

	"percept-server/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 60
	MapHeight = 40

	MaxBuildings = 5
	MinSize      = 5
	MaxSize      = 9

	GroveCount = 40
)

// Generate создает демо-поселение: открытая равнина, несколько строений
// с дверными проемами, рощи, защищенная зона и обитатели. Один сид -
// один и тот же мир вплоть до ID сущностей.
func Generate(seed int64) (*domain.GameWorld, []*domain.Entity) {
	rng := rand.New(rand.NewSource(seed))

	builder := NewWorld(rng).
		WithTerrain().
		WithBuildings(MaxBuildings).
		WithGroves(GroveCount).
		WithSanctuary(6, 6).
		SpawnItemsIndoors("torch", 4).
		SpawnItemsIndoors("hidden_cache", 2).
		SpawnItemsOutdoors("brazier", 2).
		SpawnItemsOutdoors("crate", 6).
		SpawnItemsOutdoors("fence", 4).
		SpawnItemsOutdoors("gold", 3).
		SpawnNPC("guard", 3).
		SpawnNPC("lamp_keeper", 1).
		SpawnNPC("scout", 2).
		SpawnMonster("prowler", 3).
		SpawnMonster("shade", 2).
		SpawnMonster("wisp", 2)

	world, entities := builder.Build()

	// Смотритель с известным ID - точка входа для debug-запросов
	warden := CreateWarden("warden_1", rng)
	if x, y, ok := builder.findOpenOutdoor(50); ok {
		warden.Pos = domain.Position{X: x, Y: y}
	} else {
		warden.Pos = domain.Position{X: 1, Y: 1} // Fallback
	}
	entities = append(entities, warden)

	return world, entities
}
