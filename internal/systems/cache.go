package systems

import (
	"percept-server/internal/domain"
	"percept-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// FieldCache владеет кэш-слотами полей: по одному на сущность (лениво, в
// Entity.Vision) и одним общим для запросов без сущности - свет, дневной
// свет, проверки достижимости по координатам.
type FieldCache struct {
	World  *domain.GameWorld
	shared *domain.VisionComponent
}

func NewFieldCache(w *domain.GameWorld) *FieldCache {
	return &FieldCache{
		World:  w,
		shared: domain.NewVisionComponent(),
	}
}

// FieldFor возвращает поле нужного вида вокруг origin, переиспользуя слот,
// если его окно не изменилось. e == nil означает ambient-запрос через общий
// слот. Слот сущности создается лениво при первом обращении.
func (c *FieldCache) FieldFor(e *domain.Entity, origin domain.Position, maxDist int, kind domain.FieldKind) *domain.RankField {
	slot := c.shared
	forMonster := false
	if e != nil {
		if e.Vision == nil {
			e.Vision = domain.NewVisionComponent()
		}
		slot = e.Vision
		forMonster = e.IsMonster()
	}

	if slot.Matches(origin, kind, maxDist) {
		return slot.Field
	}

	if slot.Field == nil {
		slot.Field = &domain.RankField{}
	}
	switch kind {
	case domain.FieldReach:
		BuildReachField(c.World, origin, maxDist, slot.Field)
	default:
		BuildSightField(c.World, origin, maxDist, forMonster, slot.Field)
	}
	slot.Origin = origin
	slot.Kind = kind
	slot.Radius = maxDist

	logger.WithComponent("field_cache").WithFields(logrus.Fields{
		"origin": origin,
		"kind":   kind.String(),
		"radius": maxDist,
		"shared": e == nil,
	}).Debug("Field rebuilt on cache miss.")

	return slot.Field
}

// ResetGO инвалидирует кэш-слоты всех сущностей в радиусе ResetRadius от
// (x, y), а также общий слот, если его окно задевает эту точку. Обязана
// вызываться ЛЮБОЙ внешней мутацией, меняющей блокирующие атрибуты рядом
// с координатой (дверь, блокирующий предмет). Сам движок её не вызывает.
func (c *FieldCache) ResetGO(x, y int) {
	p := domain.Position{X: x, Y: y}

	reset := 0
	for _, e := range c.World.EntityRegistry {
		if e.Vision == nil {
			continue
		}
		if e.Pos.ChebyshevTo(p) <= domain.ResetRadius {
			e.Vision.Invalidate()
			reset++
		}
	}
	if c.shared.Origin.ChebyshevTo(p) <= domain.ResetRadius {
		c.shared.Invalidate()
	}

	logger.WithComponent("field_cache").WithFields(logrus.Fields{
		"x":           x,
		"y":           y,
		"slots_reset": reset,
	}).Debug("Cache invalidated around mutated terrain.")
}
