package domain

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile - клетка ландшафта.
// Light и Daylight пишутся ТОЛЬКО световым движком (systems/light.go),
// всё остальное для движка восприятия read-only.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`

	SightBlock bool `json:"sightBlock"` // не пропускает взгляд
	MoveBlock  bool `json:"moveBlock"`  // не пропускает движение
	NoMonster  bool `json:"noMonster"`  // монстры не видят/не идут через эту клетку
	Indoor     bool `json:"indoor"`     // помещение (дневной свет только через Daylight)

	Light    int `json:"light"`    // аддитивный динамический свет
	Daylight int `json:"daylight"` // 0..MaxDaylight, просачивание дневного света

	Env string `json:"env"` // floor, stone, grass - косметика для debug-клиента

	// ItemID - предмет, лежащий в клетке (максимум один).
	// Поддерживается миром, движок восприятия только читает.
	ItemID string `json:"itemId,omitempty"`
}

type GameWorld struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`

	GlobalTick int `json:"globalTick"`

	// GlobalDaylight - уличный уровень дневного света (0..255).
	// Меняется внешним циклом день/ночь, движок его только читает.
	GlobalDaylight int `json:"globalDaylight"`

	// SpatialHash: Индекс позиции -> Список сущностей
	// Ключ: Y * Width + X
	// json:"-" означает, что мы НЕ отправляем этот индекс клиенту (экономия трафика)
	SpatialHash    map[int][]*Entity  `json:"-"`
	EntityRegistry map[string]*Entity `json:"-"`
	ItemRegistry   map[string]*Entity `json:"-"`
}
