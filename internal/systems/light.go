package systems

import (
	"percept-server/internal/domain"
	"percept-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLight добавляет вклад источника силы strength в клетке (x, y).
// Источник получает силу напрямую, остальные клетки радиуса - затухание
// |strength| / (ранг * манхэттен), посчитанное от модуля и примененное со
// знаком strength. Поэтому AddLight(x, y, -S) вычитает РОВНО то, что добавил
// AddLight(x, y, S): целочисленное деление проходит по одним и тем же числам.
func AddLight(c *FieldCache, x, y, strength int) {
	w := c.World
	source := w.TileAt(x, y)
	if source == nil || strength == 0 {
		return
	}

	source.Light += strength

	origin := domain.Position{X: x, Y: y}
	field := c.FieldFor(nil, origin, domain.LightRadius, domain.FieldSight)

	mag := strength
	if mag < 0 {
		mag = -mag
	}

	for ty := y - domain.LightRadius; ty <= y+domain.LightRadius; ty++ {
		for tx := x - domain.LightRadius; tx <= x+domain.LightRadius; tx++ {
			if tx == x && ty == y {
				continue
			}
			dx := tx - x
			dy := ty - y
			if dx*dx+dy*dy > domain.LightRadius*domain.LightRadius+1 {
				continue
			}
			tile := w.TileAt(tx, ty)
			if tile == nil {
				continue
			}

			target := domain.Position{X: tx, Y: ty}
			v := QueryField(field, origin, target)
			if v == 0 {
				continue // волна не дошла: клетка в тени
			}

			div := v * origin.ManhattanTo(target)
			if div <= 0 {
				// Инвариант колец сломан: ранг и дистанция всегда >= 1
				logger.WithComponent("light_engine").WithFields(logrus.Fields{
					"source": origin,
					"target": target,
					"rank":   v,
				}).Panic("attenuation divisor is not positive")
			}

			contrib := mag / div
			if strength < 0 {
				tile.Light -= contrib
			} else {
				tile.Light += contrib
			}
		}
	}
}

// RemoveLight - точная инверсия AddLight. Сохранение света гарантируется
// только при вызове с теми же (x, y, strength), что и парный AddLight:
// это контракт вызывающей стороны, движок его не чинит.
func RemoveLight(c *FieldCache, x, y, strength int) {
	AddLight(c, x, y, -strength)
}

// ComputeDaylight пересчитывает коэффициент дневного света клетки помещения:
// ищет лучшую видимую уличную клетку в радиусе света и затухает MaxDaylight
// по той же схеме ранг * манхэттен. Без видимой улицы коэффициент 0.
// Для уличных клеток ничего не делает.
func ComputeDaylight(c *FieldCache, x, y int) {
	w := c.World
	tile := w.TileAt(x, y)
	if tile == nil || !tile.Indoor {
		return
	}

	origin := domain.Position{X: x, Y: y}
	field := c.FieldFor(nil, origin, domain.LightRadius, domain.FieldSight)

	best := 0
	for ty := y - domain.LightRadius; ty <= y+domain.LightRadius; ty++ {
		for tx := x - domain.LightRadius; tx <= x+domain.LightRadius; tx++ {
			if tx == x && ty == y {
				continue
			}
			dx := tx - x
			dy := ty - y
			if dx*dx+dy*dy > domain.LightRadius*domain.LightRadius+1 {
				continue
			}
			out := w.TileAt(tx, ty)
			if out == nil || out.Indoor || out.SightBlock {
				continue
			}

			target := domain.Position{X: tx, Y: ty}
			v := QueryField(field, origin, target)
			if v == 0 {
				continue
			}

			val := domain.MaxDaylight / (v * origin.ManhattanTo(target))
			if val > best {
				best = val
			}
		}
	}

	if best > domain.MaxDaylight {
		best = domain.MaxDaylight
	}
	tile.Daylight = best
}

// AddLights пересканирует окрестность (x, y) и включает весь свет, который
// излучают лежащие там предметы и стоящие там сущности, затем обновляет
// дневной свет для клеток помещений в радиусе. Вызывается при изменении
// занятости области.
func AddLights(c *FieldCache, x, y int) {
	applyAreaLights(c, x, y, 1)
}

// RemoveLights - парная операция к AddLights для той же окрестности
func RemoveLights(c *FieldCache, x, y int) {
	applyAreaLights(c, x, y, -1)
}

func applyAreaLights(c *FieldCache, x, y, sign int) {
	w := c.World

	for ty := y - domain.LightRadius; ty <= y+domain.LightRadius; ty++ {
		for tx := x - domain.LightRadius; tx <= x+domain.LightRadius; tx++ {
			if !w.InBounds(tx, ty) {
				continue
			}
			if item := w.ItemAt(tx, ty); item != nil {
				if s := item.Item.Emission(); s != 0 {
					AddLight(c, tx, ty, sign*s)
				}
			}
			for _, e := range w.GetEntitiesAt(tx, ty) {
				if s := e.Light.Emission(); s != 0 {
					AddLight(c, tx, ty, sign*s)
				}
			}
		}
	}

	// Занятость могла открыть или закрыть просвет на улицу
	for ty := y - domain.LightRadius; ty <= y+domain.LightRadius; ty++ {
		for tx := x - domain.LightRadius; tx <= x+domain.LightRadius; tx++ {
			tile := w.TileAt(tx, ty)
			if tile != nil && tile.Indoor {
				ComputeDaylight(c, tx, ty)
			}
		}
	}
}
