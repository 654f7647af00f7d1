package domain

// --- КОМПОНЕНТЫ ---

// StatsComponent - Характеристики и Ресурсы
type StatsComponent struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

// PerceptComponent - всё, что нужно движку восприятия.
// Perception и Stealth - навыки, остальное - чувства и состояние.
type PerceptComponent struct {
	Perception int `json:"perception"` // навык наблюдателя
	Stealth    int `json:"stealth"`    // навык скрытности цели

	MoveMode MoveMode `json:"moveMode"` // idle / walk / run

	Infrared     bool `json:"infrared"`     // инфразрение (не зависит от света)
	SeeInvisible int  `json:"seeInvisible"` // уровень прозрения невидимости
	Invisible    int  `json:"invisible"`    // уровень собственной невидимости

	IsCorpse bool `json:"isCorpse"` // труп: сущность ещё в мире, но не воспринимается
}

// LightComponent - излучение света сущностью (факел в руке и т.п.)
type LightComponent struct {
	Strength int  `json:"strength"`
	Active   bool `json:"active"`
}

// Emission возвращает текущую силу излучения
func (l *LightComponent) Emission() int {
	if l == nil || !l.Active {
		return 0
	}
	return l.Strength
}

// --- СУЩНОСТЬ ---

type Entity struct {
	// Идентификация
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	Pos Position `json:"pos"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Stats   *StatsComponent   `json:"stats,omitempty"`
	Percept *PerceptComponent `json:"percept,omitempty"`
	Light   *LightComponent   `json:"light,omitempty"`
	Item    *ItemComponent    `json:"item,omitempty"`

	// Vision - кэш-слот поля видимости. Принадлежит движку восприятия,
	// клиенту не отправляется.
	Vision *VisionComponent `json:"-"`
}

// IsMonster относит сущность к классу монстров.
// Для монстров действует запрет клеток NoMonster при построении полей.
func (e *Entity) IsMonster() bool {
	return e.Type == EntityTypeMonster
}

// IsActive: сущность жива и участвует в симуляции
func (e *Entity) IsActive() bool {
	if e == nil {
		return false
	}
	if e.Stats != nil && e.Stats.IsDead {
		return false
	}
	return true
}

// PerceptionSkill возвращает навык восприятия (0 без компонента)
func (e *Entity) PerceptionSkill() int {
	if e.Percept == nil {
		return 0
	}
	return e.Percept.Perception
}

// StealthSkill возвращает навык скрытности (0 без компонента)
func (e *Entity) StealthSkill() int {
	if e.Percept == nil {
		return 0
	}
	return e.Percept.Stealth
}
