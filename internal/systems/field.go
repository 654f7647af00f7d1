package systems

import (
	"percept-server/internal/domain"
)

// neighborOffsets - 8 соседей клетки (диагонали включены)
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

type blockedFunc func(x, y int) bool

// BuildSightField строит поле видимости вокруг origin.
// forMonster дополнительно запрещает клетки NoMonster: монстры не видят
// сквозь защищенные зоны, игроки - видят.
func BuildSightField(w *domain.GameWorld, origin domain.Position, maxDist int, forMonster bool, field *domain.RankField) {
	buildField(origin, maxDist, field, func(x, y int) bool {
		return sightBlocked(w, x, y, forMonster)
	})
}

// BuildReachField строит поле достижимости вокруг origin
func BuildReachField(w *domain.GameWorld, origin domain.Position, maxDist int, field *domain.RankField) {
	buildField(origin, maxDist, field, func(x, y int) bool {
		return reachBlocked(w, x, y)
	})
}

func sightBlocked(w *domain.GameWorld, x, y int, forMonster bool) bool {
	tile := w.TileAt(x, y)
	if tile == nil {
		return true // край карты непрозрачен
	}
	if tile.SightBlock {
		return true
	}
	if forMonster && tile.NoMonster {
		return true
	}
	if item := w.ItemAt(x, y); item != nil && item.Item != nil && item.Item.SightBlock {
		return true
	}
	return false
}

func reachBlocked(w *domain.GameWorld, x, y int) bool {
	tile := w.TileAt(x, y)
	if tile == nil {
		return true
	}
	if tile.MoveBlock {
		return true
	}
	if item := w.ItemAt(x, y); item != nil && item.Item != nil && item.Item.MoveBlock {
		return true
	}
	return false
}

// buildField - волновое распространение по концентрическим кольцам Чебышева.
// Клетка кольца ring принимается с рангом ring+1, если она не заблокирована и
// хотя бы один из 8 соседей держит ранг РОВНО ring. Однажды записанный ранг
// не перезаписывается: выигрывает первое достигшее кольцо. Одиночная глухая
// клетка отбрасывает "тень" за собой, если волна не обтекает её по диагонали.
func buildField(origin domain.Position, maxDist int, field *domain.RankField, blocked blockedFunc) {
	field.Reset()
	field.Set(domain.FieldHalfWidth, domain.FieldHalfWidth, 1)

	if maxDist > domain.FieldHalfWidth {
		maxDist = domain.FieldHalfWidth
	}

	for ring := 1; ring <= maxDist; ring++ {
		// Верхний и нижний ряды кольца
		for dx := -ring; dx <= ring; dx++ {
			admit(origin, dx, -ring, ring, field, blocked)
			admit(origin, dx, ring, ring, field, blocked)
		}
		// Боковые колонки без углов (углы уже покрыты рядами)
		for dy := -ring + 1; dy <= ring-1; dy++ {
			admit(origin, -ring, dy, ring, field, blocked)
			admit(origin, ring, dy, ring, field, blocked)
		}
	}
}

func admit(origin domain.Position, dx, dy, ring int, field *domain.RankField, blocked blockedFunc) {
	fx := dx + domain.FieldHalfWidth
	fy := dy + domain.FieldHalfWidth
	if !domain.InWindow(fx, fy) {
		return // за окном: молча пропускаем, без ошибки
	}
	if field.At(fx, fy) != 0 {
		return
	}
	if blocked(origin.X+dx, origin.Y+dy) {
		return
	}

	want := int8(ring)
	for _, off := range neighborOffsets {
		if field.At(fx+off[0], fy+off[1]) == want {
			field.Set(fx, fy, want+1)
			return
		}
	}
}

// QueryField возвращает лучший (наименьший) ненулевой ранг среди 8 соседей
// target, либо 0, если волна туда не дошла. Сам target намеренно НЕ
// проверяется: цель, стоящая в дверном проеме или на блокирующем предмете,
// всё равно считается видимой, если волна достигла соседней клетки.
// Цель ближе одной клетки к краю окна дает 0 - запаса для соседей нет.
func QueryField(field *domain.RankField, origin, target domain.Position) int {
	fx := target.X - origin.X + domain.FieldHalfWidth
	fy := target.Y - origin.Y + domain.FieldHalfWidth

	if fx < 1 || fx > domain.FieldSize-2 || fy < 1 || fy > domain.FieldSize-2 {
		return 0
	}

	best := 0
	for _, off := range neighborOffsets {
		v := int(field.At(fx+off[0], fy+off[1]))
		if v > 0 && (best == 0 || v < best) {
			best = v
		}
	}
	return best
}
