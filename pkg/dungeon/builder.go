package dungeon

import (
	"math/rand"

	"percept-server/internal/domain"
	"percept-server/pkg/logger"
)

// Rect - Вспомогательная структура для строения
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WorldBuilder предоставляет fluent API для сборки демо-мира
type WorldBuilder struct {
	width     int
	height    int
	buildings []Rect
	gameMap   [][]domain.Tile
	entities  []*domain.Entity
	items     []*domain.Entity
	rng       *rand.Rand
}

// NewWorld создает новый builder
func NewWorld(rng *rand.Rand) *WorldBuilder {
	return &WorldBuilder{
		width:  MapWidth,
		height: MapHeight,
		rng:    rng,
	}
}

func (b *WorldBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// WithSize устанавливает размер карты
func (b *WorldBuilder) WithSize(width, height int) *WorldBuilder {
	b.width = width
	b.height = height
	return b
}

// WithTerrain заполняет карту открытой равниной
func (b *WorldBuilder) WithTerrain() *WorldBuilder {
	b.gameMap = make([][]domain.Tile, b.height)
	for y := 0; y < b.height; y++ {
		row := make([]domain.Tile, b.width)
		for x := 0; x < b.width; x++ {
			row[x] = domain.Tile{X: x, Y: y, Env: "grass"}
		}
		b.gameMap[y] = row
	}
	return b
}

// WithBuildings возводит строения: глухие стены, пол в помещении и
// дверной проем в одной из стен
func (b *WorldBuilder) WithBuildings(maxBuildings int) *WorldBuilder {
	b.buildings = make([]Rect, 0, maxBuildings)

	for i := 0; i < maxBuildings; i++ {
		w := b.randRange(MinSize, MaxSize)
		h := b.randRange(MinSize, MaxSize)
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newBuilding := Rect{X: x, Y: y, W: w, H: h}

		// Строения не должны прилипать друг к другу
		failed := false
		for _, other := range b.buildings {
			padded := Rect{X: other.X - 1, Y: other.Y - 1, W: other.W + 2, H: other.H + 2}
			if newBuilding.Intersects(padded) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		b.raiseBuilding(newBuilding)
		b.buildings = append(b.buildings, newBuilding)
	}

	return b
}

func (b *WorldBuilder) raiseBuilding(r Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			tile := &b.gameMap[y][x]
			tile.Indoor = true
			onEdge := x == r.X || x == r.X+r.W-1 || y == r.Y || y == r.Y+r.H-1
			if onEdge {
				tile.SightBlock = true
				tile.MoveBlock = true
				tile.Env = "wall"
			} else {
				tile.Env = "floor"
			}
		}
	}

	// Дверной проем в южной стене (не в углу). Проем считается уличной
	// клеткой: через него в помещение просачивается дневной свет.
	doorX := r.X + 1 + b.rng.Intn(r.W-2)
	door := &b.gameMap[r.Y+r.H-1][doorX]
	door.SightBlock = false
	door.MoveBlock = false
	door.Indoor = false
	door.Env = "door"
}

// WithGroves высаживает на равнине непрозрачные и непроходимые деревья
func (b *WorldBuilder) WithGroves(count int) *WorldBuilder {
	for i := 0; i < count; i++ {
		x, y, ok := b.findOpenOutdoor(20)
		if !ok {
			continue
		}
		tile := &b.gameMap[y][x]
		tile.SightBlock = true
		tile.MoveBlock = true
		tile.Env = "tree"
	}
	return b
}

// WithSanctuary размечает зону, куда твари не суются: их волны зрения
// и досягаемости обтекают её, как стены
func (b *WorldBuilder) WithSanctuary(w, h int) *WorldBuilder {
	for attempt := 0; attempt < 20; attempt++ {
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)
		zone := Rect{X: x, Y: y, W: w, H: h}

		blocked := false
		for _, building := range b.buildings {
			if zone.Intersects(building) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				tile := &b.gameMap[y+dy][x+dx]
				tile.NoMonster = true
				tile.Env = "sanctuary"
			}
		}
		break
	}
	return b
}

// SpawnNPC спавнит обитателей на открытых уличных клетках
func (b *WorldBuilder) SpawnNPC(templateName string, count int) *WorldBuilder {
	template, ok := NPCTemplates[templateName]
	if !ok {
		logger.Log.Warnf("Unknown NPC template: %s", templateName)
		return b
	}

	for i := 0; i < count; i++ {
		x, y, found := b.findOpenOutdoor(20)
		if !found {
			continue
		}
		b.entities = append(b.entities, template.SpawnEntity(domain.Position{X: x, Y: y}, b.rng))
	}
	return b
}

// SpawnMonster спавнит тварей за пределами защищенных зон
func (b *WorldBuilder) SpawnMonster(templateName string, count int) *WorldBuilder {
	template, ok := MonsterTemplates[templateName]
	if !ok {
		logger.Log.Warnf("Unknown monster template: %s", templateName)
		return b
	}

	for i := 0; i < count; i++ {
		var x, y int
		found := false
		for attempt := 0; attempt < 20; attempt++ {
			var ok bool
			x, y, ok = b.findOpenOutdoor(1)
			if ok && !b.gameMap[y][x].NoMonster {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		b.entities = append(b.entities, template.SpawnEntity(domain.Position{X: x, Y: y}, b.rng))
	}
	return b
}

// SpawnItemsIndoors раскладывает предметы по помещениям (факелы, тайники)
func (b *WorldBuilder) SpawnItemsIndoors(templateName string, count int) *WorldBuilder {
	template, ok := ItemTemplates[templateName]
	if !ok {
		logger.Log.Warnf("Unknown item template: %s", templateName)
		return b
	}

	for i := 0; i < count && len(b.buildings) > 0; i++ {
		building := b.buildings[b.rng.Intn(len(b.buildings))]

		var x, y int
		found := false
		for attempt := 0; attempt < 20; attempt++ {
			x = building.X + 1 + b.rng.Intn(building.W-2)
			y = building.Y + 1 + b.rng.Intn(building.H-2)
			if !b.gameMap[y][x].SightBlock && b.gameMap[y][x].ItemID == "" {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		item := template.SpawnItem(domain.Position{X: x, Y: y}, b.rng)
		b.gameMap[y][x].ItemID = item.ID // резервируем клетку до Build
		b.items = append(b.items, item)
	}
	return b
}

// SpawnItemsOutdoors раскладывает предметы на улице (ящики, изгороди)
func (b *WorldBuilder) SpawnItemsOutdoors(templateName string, count int) *WorldBuilder {
	template, ok := ItemTemplates[templateName]
	if !ok {
		logger.Log.Warnf("Unknown item template: %s", templateName)
		return b
	}

	for i := 0; i < count; i++ {
		x, y, found := b.findOpenOutdoor(20)
		if !found {
			continue
		}

		item := template.SpawnItem(domain.Position{X: x, Y: y}, b.rng)
		b.gameMap[y][x].ItemID = item.ID
		b.items = append(b.items, item)
	}
	return b
}

// findOpenOutdoor ищет свободную уличную клетку без предмета
func (b *WorldBuilder) findOpenOutdoor(attempts int) (int, int, bool) {
	for i := 0; i < attempts; i++ {
		x := b.rng.Intn(b.width)
		y := b.rng.Intn(b.height)
		tile := &b.gameMap[y][x]
		if !tile.Indoor && !tile.SightBlock && !tile.MoveBlock && tile.ItemID == "" {
			return x, y, true
		}
	}
	return 0, 0, false
}

// Build собирает готовый мир: инициализирует индексы и прописывает предметы
func (b *WorldBuilder) Build() (*domain.GameWorld, []*domain.Entity) {
	world := &domain.GameWorld{
		Map:            b.gameMap,
		Width:          b.width,
		Height:         b.height,
		GlobalDaylight: domain.MaxDaylight,
		SpatialHash:    make(map[int][]*domain.Entity),
		EntityRegistry: make(map[string]*domain.Entity),
		ItemRegistry:   make(map[string]*domain.Entity),
	}

	for _, item := range b.items {
		// Клетка была зарезервирована при спавне, снимаем резерв и
		// кладем предмет штатным путем
		world.Map[item.Pos.Y][item.Pos.X].ItemID = ""
		if err := world.PlaceItem(item, item.Pos.X, item.Pos.Y); err != nil {
			logger.Log.WithError(err).Warnf("Failed to place item %s", item.ID)
		}
	}

	return world, b.entities
}
