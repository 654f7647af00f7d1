package systems

import (
	"percept-server/internal/domain"
	"percept-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CanPerceiveEntity возвращает стоимость восприятия цели наблюдателем.
// 0 = цель не воспринимается вообще, 1 = видна идеально, больше = хуже.
// Стоимость складывается из дистанции, стелса цели (ослабленного её режимом
// движения), навыка наблюдателя и темноты, после чего проверяется волна
// видимости из кэша наблюдателя.
func CanPerceiveEntity(c *FieldCache, observer, target *domain.Entity) int {
	if observer == nil || target == nil {
		return 0
	}
	if observer.ID == target.ID {
		return 1 // себя видим всегда
	}

	if !target.IsActive() {
		return 0
	}
	if target.Percept != nil && target.Percept.IsCorpse {
		return 0
	}
	if invisLevel(target) > seeInvisLevel(observer) {
		return 0
	}

	d0 := observer.Pos.DistanceSquaredTo(target.Pos)
	if d0 > domain.MaxPerceiveDistSq {
		return 0
	}

	cost := d0

	// Стелс цели. На бегу делитель больше - скрытность работает хуже.
	k := stealthDivisor(target)
	cost = cost * (target.StealthSkill() + k) / k

	perception := observer.PerceptionSkill()
	cost -= 2 * perception

	// Инфразрение не зависит от света: штрафа темноты нет вообще
	if observer.Percept == nil || !observer.Percept.Infrared {
		light := effectiveLight(c.World, target.Pos, perception)
		cost += (64 - light) * 2
	}

	// В упор стоимость ограничена сверху: цель на соседней клетке
	// не промахивается мимо глаз даже в полной темноте
	if d0 < domain.CloseRangeDistSq && cost > domain.CloseRangeCost {
		cost = domain.CloseRangeCost
	}
	if cost > domain.MaxPerceiveCost {
		return 0
	}

	field := c.FieldFor(observer, observer.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(field, observer.Pos, target.Pos) == 0 {
		logger.WithComponent("perception").WithFields(logrus.Fields{
			"observer_id": observer.ID,
			"target_id":   target.ID,
		}).Debug("Target rejected: sight wave did not reach it.")
		return 0
	}

	if cost < 1 {
		return 1
	}
	return cost
}

// CanPerceiveItem - та же схема для предмета: без стелса и режима движения,
// вместо них плоский офсет от навыка, штраф темноты втрое сильнее и надбавка
// за спрятанность предмета.
func CanPerceiveItem(c *FieldCache, observer, item *domain.Entity) int {
	if observer == nil || item == nil || item.Item == nil {
		return 0
	}

	d0 := observer.Pos.DistanceSquaredTo(item.Pos)
	if d0 > domain.MaxPerceiveDistSq {
		return 0
	}

	cost := d0

	perception := observer.PerceptionSkill()
	cost += 50 - 2*perception

	if observer.Percept == nil || !observer.Percept.Infrared {
		light := effectiveLight(c.World, item.Pos, perception)
		cost += (64 - light) * 3
	}

	if item.Item.Hidden {
		cost += item.Item.HiddenStrength
	}

	if d0 < domain.CloseRangeDistSq && cost > domain.CloseRangeCost {
		cost = domain.CloseRangeCost
	}
	if cost > domain.MaxPerceiveCost {
		return 0
	}

	field := c.FieldFor(observer, observer.Pos, domain.PerceptionFieldRadius, domain.FieldSight)
	if QueryField(field, observer.Pos, item.Pos) == 0 {
		return 0
	}

	if cost < 1 {
		return 1
	}
	return cost
}

// CanReach проверяет достижимость to из from волной движения.
// Чистая проверка осуществимости: без навыков, света и дистанционных весов.
func CanReach(c *FieldCache, from, to domain.Position) bool {
	field := c.FieldFor(nil, from, domain.PerceptionFieldRadius, domain.FieldReach)
	return QueryField(field, from, to) != 0
}

// effectiveLight - эффективная освещенность клетки глазами наблюдателя.
// База - максимум динамического света и дневного фона; в помещении дневной
// фон просачивается через коэффициент Daylight клетки. Навык восприятия
// усиливает свет до двух раз, итог зажат потолком 64 для расчета штрафа.
func effectiveLight(w *domain.GameWorld, pos domain.Position, perception int) int {
	tile := w.TileAt(pos.X, pos.Y)
	if tile == nil {
		return 0
	}

	ambient := w.GlobalDaylight
	if tile.Indoor {
		ambient = ambient * tile.Daylight / domain.MaxDaylight
	}

	raw := tile.Light
	if ambient > raw {
		raw = ambient
	}

	p := perception
	if p > 10 {
		p = 10
	}
	light := raw * (10 + p) / 10
	if light > 255 {
		light = 255
	}
	if raw == 0 && perception > 150 {
		light = 1 // тренированный глаз различает силуэты даже в темноте
	}
	if light > 64 {
		light = 64
	}
	return light
}

func stealthDivisor(e *domain.Entity) int {
	if e.Percept == nil {
		return domain.StealthDivisorIdle
	}
	switch e.Percept.MoveMode {
	case domain.MoveModeRun:
		return domain.StealthDivisorRun
	case domain.MoveModeWalk:
		return domain.StealthDivisorWalk
	default:
		return domain.StealthDivisorIdle
	}
}

func invisLevel(e *domain.Entity) int {
	if e.Percept == nil {
		return 0
	}
	return e.Percept.Invisible
}

func seeInvisLevel(e *domain.Entity) int {
	if e.Percept == nil {
		return 0
	}
	return e.Percept.SeeInvisible
}
