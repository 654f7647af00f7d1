package domain

import "errors"

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

// InBounds проверяет, лежит ли координата внутри карты
func (w *GameWorld) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// TileAt возвращает указатель на клетку или nil за границей карты
func (w *GameWorld) TileAt(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.Map[y][x]
}

// GetEntitiesAt возвращает список сущностей в конкретной клетке (быстро!)
func (w *GameWorld) GetEntitiesAt(x, y int) []*Entity {
	if !w.InBounds(x, y) {
		return nil
	}
	idx := w.GetIndex(x, y)
	return w.SpatialHash[idx]
}

// GetEntity ищет сущность по ID
func (w *GameWorld) GetEntity(id string) *Entity {
	if w.EntityRegistry == nil {
		return nil
	}
	return w.EntityRegistry[id]
}

// GetItem ищет предмет по ID
func (w *GameWorld) GetItem(id string) *Entity {
	if w.ItemRegistry == nil {
		return nil
	}
	return w.ItemRegistry[id]
}

// ItemAt возвращает предмет, лежащий в клетке, или nil
func (w *GameWorld) ItemAt(x, y int) *Entity {
	tile := w.TileAt(x, y)
	if tile == nil || tile.ItemID == "" {
		return nil
	}
	return w.GetItem(tile.ItemID)
}

// RegisterEntity добавляет сущность в реестр
func (w *GameWorld) RegisterEntity(e *Entity) {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[string]*Entity)
	}
	w.EntityRegistry[e.ID] = e
}

// UnregisterEntity удаляет сущность из реестра
func (w *GameWorld) UnregisterEntity(id string) {
	if w.EntityRegistry != nil {
		delete(w.EntityRegistry, id)
	}
}

// AddEntity добавляет сущность в индекс
func (w *GameWorld) AddEntity(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
}

// RemoveEntity удаляет сущность из индекса (например, при смерти или телепорте)
func (w *GameWorld) RemoveEntity(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	entities := w.SpatialHash[idx]

	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last: порядок внутри клетки не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			w.SpatialHash[idx] = entities[:lastIdx]
			return
		}
	}
}

// UpdateEntityPos перемещает сущность в индексе
func (w *GameWorld) UpdateEntityPos(e *Entity, newX, newY int) error {
	// 1. Проверка границ (на всякий случай)
	if !w.InBounds(newX, newY) {
		return errors.New("out of bounds")
	}

	// 2. Удаляем из старой позиции
	w.RemoveEntity(e)

	// 3. Обновляем координаты в сущности
	e.Pos.X = newX
	e.Pos.Y = newY

	// 4. Добавляем в новую позицию
	w.AddEntity(e)
	return nil
}

// PlaceItem кладет предмет в клетку. Клетка должна быть свободна от предметов.
// Инвалидацию кэшей (ResetGO) при блокирующих флагах делает вызывающая сторона.
func (w *GameWorld) PlaceItem(item *Entity, x, y int) error {
	tile := w.TileAt(x, y)
	if tile == nil {
		return errors.New("out of bounds")
	}
	if tile.ItemID != "" {
		return errors.New("tile already occupied by item")
	}
	if w.ItemRegistry == nil {
		w.ItemRegistry = make(map[string]*Entity)
	}
	item.Pos = Position{X: x, Y: y}
	w.ItemRegistry[item.ID] = item
	tile.ItemID = item.ID
	return nil
}

// TakeItemAt забирает предмет из клетки (или nil, если там пусто)
func (w *GameWorld) TakeItemAt(x, y int) *Entity {
	tile := w.TileAt(x, y)
	if tile == nil || tile.ItemID == "" {
		return nil
	}
	item := w.GetItem(tile.ItemID)
	delete(w.ItemRegistry, tile.ItemID)
	tile.ItemID = ""
	return item
}
