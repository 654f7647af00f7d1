package dungeon

import (
	"math/rand"

	"percept-server/internal/domain"
)

// CreateWarden создает смотрителя: сущность с известным ID и развитым
// восприятием, через которую debug-клиенты опрашивают мир
func CreateWarden(id string, rng *rand.Rand) *domain.Entity {
	w := EntityTemplate{
		Name: "Смотритель",
		Type: domain.EntityTypePlayer,
		Stats: domain.StatsComponent{
			HP: 100,
		},
		Percept: domain.PerceptComponent{
			Perception:   100,
			SeeInvisible: 2,
		},
	}.SpawnEntity(domain.Position{}, rng)

	w.ID = id
	return w
}
