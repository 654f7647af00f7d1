package dungeon

import (
	"math/rand"

	"percept-server/internal/domain"
	"percept-server/pkg/utils"
)

// EntityTemplate определяет шаблон для создания сущности
type EntityTemplate struct {
	Name    string
	Type    string
	Stats   domain.StatsComponent
	Percept domain.PerceptComponent
	Light   *domain.LightComponent
}

// SpawnEntity создает сущность из шаблона на заданной позиции
func (t EntityTemplate) SpawnEntity(pos domain.Position, rng *rand.Rand) *domain.Entity {
	entity := &domain.Entity{
		ID:   utils.GenerateDeterministicID(rng, "e_"),
		Type: t.Type,
		Name: t.Name,
		Pos:  pos,
		Stats: &domain.StatsComponent{
			HP:    t.Stats.HP,
			MaxHP: t.Stats.HP,
		},
		Percept: &domain.PerceptComponent{
			Perception:   t.Percept.Perception,
			Stealth:      t.Percept.Stealth,
			MoveMode:     t.Percept.MoveMode,
			Infrared:     t.Percept.Infrared,
			SeeInvisible: t.Percept.SeeInvisible,
			Invisible:    t.Percept.Invisible,
		},
	}

	if t.Light != nil {
		entity.Light = &domain.LightComponent{
			Strength: t.Light.Strength,
			Active:   t.Light.Active,
		}
	}

	return entity
}

// --- ОБИТАТЕЛИ ПОСЕЛЕНИЯ ---

var Guard = EntityTemplate{
	Name: "Стражник",
	Type: domain.EntityTypeNPC,
	Stats: domain.StatsComponent{
		HP: 40,
	},
	Percept: domain.PerceptComponent{
		Perception: 60,
	},
}

var LampKeeper = EntityTemplate{
	Name: "Фонарщик",
	Type: domain.EntityTypeNPC,
	Stats: domain.StatsComponent{
		HP: 20,
	},
	Percept: domain.PerceptComponent{
		Perception: 30,
		MoveMode:   domain.MoveModeWalk,
	},
	Light: &domain.LightComponent{
		Strength: 150,
		Active:   true,
	},
}

var Scout = EntityTemplate{
	Name: "Разведчик",
	Type: domain.EntityTypeNPC,
	Stats: domain.StatsComponent{
		HP: 30,
	},
	Percept: domain.PerceptComponent{
		Perception: 80,
		Stealth:    50,
		MoveMode:   domain.MoveModeWalk,
	},
}

// --- ТВАРИ ---

var Prowler = EntityTemplate{
	Name: "Ночной охотник",
	Type: domain.EntityTypeMonster,
	Stats: domain.StatsComponent{
		HP: 35,
	},
	Percept: domain.PerceptComponent{
		Perception: 40,
		Stealth:    30,
		Infrared:   true,
	},
}

var Shade = EntityTemplate{
	Name: "Тень",
	Type: domain.EntityTypeMonster,
	Stats: domain.StatsComponent{
		HP: 15,
	},
	Percept: domain.PerceptComponent{
		Stealth:   60,
		Invisible: 2,
	},
}

var Wisp = EntityTemplate{
	Name: "Блуждающий огонек",
	Type: domain.EntityTypeMonster,
	Stats: domain.StatsComponent{
		HP: 5,
	},
	Percept: domain.PerceptComponent{},
	Light: &domain.LightComponent{
		Strength: 120,
		Active:   true,
	},
}

// MonsterTemplates - карта всех доступных тварей
var MonsterTemplates = map[string]EntityTemplate{
	"prowler": Prowler,
	"shade":   Shade,
	"wisp":    Wisp,
}

// NPCTemplates - карта всех обитателей
var NPCTemplates = map[string]EntityTemplate{
	"guard":       Guard,
	"lamp_keeper": LampKeeper,
	"scout":       Scout,
}

// --- ПРЕДМЕТЫ ---

// ItemTemplate определяет шаблон для создания предмета-сущности
type ItemTemplate struct {
	Name       string
	Properties domain.ItemComponent
}

// SpawnItem создаёт Entity-предмет из шаблона
func (t ItemTemplate) SpawnItem(pos domain.Position, rng *rand.Rand) *domain.Entity {
	return &domain.Entity{
		ID:   utils.GenerateDeterministicID(rng, "ei_"),
		Type: domain.EntityTypeItem,
		Name: t.Name,
		Pos:  pos,
		Item: &domain.ItemComponent{
			SightBlock:            t.Properties.SightBlock,
			MoveBlock:             t.Properties.MoveBlock,
			Hidden:                t.Properties.Hidden,
			HiddenStrength:        t.Properties.HiddenStrength,
			Active:                t.Properties.Active,
			LightStrength:         t.Properties.LightStrength,
			LightStrengthInactive: t.Properties.LightStrengthInactive,
		},
	}
}

// --- ИСТОЧНИКИ СВЕТА ---

var Torch = ItemTemplate{
	Name: "Факел",
	Properties: domain.ItemComponent{
		Active:        true,
		LightStrength: 200,
	},
}

var Brazier = ItemTemplate{
	Name: "Жаровня",
	Properties: domain.ItemComponent{
		Active:        true,
		LightStrength: 300,
	},
}

var Ember = ItemTemplate{
	// Тлеющие угли: погашены, но слабый свет остается
	Name: "Угли",
	Properties: domain.ItemComponent{
		Active:                false,
		LightStrength:         200,
		LightStrengthInactive: 20,
	},
}

// --- ПРЕПЯТСТВИЯ ---

var Crate = ItemTemplate{
	Name: "Ящик",
	Properties: domain.ItemComponent{
		SightBlock: true,
		MoveBlock:  true,
	},
}

var Fence = ItemTemplate{
	// Через изгородь видно, но не пройти
	Name: "Изгородь",
	Properties: domain.ItemComponent{
		MoveBlock: true,
	},
}

// --- ТАЙНИКИ ---

var HiddenCache = ItemTemplate{
	Name: "Тайник",
	Properties: domain.ItemComponent{
		Hidden:         true,
		HiddenStrength: 60,
	},
}

var GoldCoin = ItemTemplate{
	Name:       "Золотая монета",
	Properties: domain.ItemComponent{},
}

// ItemTemplates - карта всех доступных предметов
var ItemTemplates = map[string]ItemTemplate{
	"torch":        Torch,
	"brazier":      Brazier,
	"ember":        Ember,
	"crate":        Crate,
	"fence":        Fence,
	"hidden_cache": HiddenCache,
	"gold":         GoldCoin,
}
