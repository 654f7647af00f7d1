package domain

// Типы сущностей
const (
	EntityTypePlayer  = "PLAYER"
	EntityTypeNPC     = "NPC"
	EntityTypeMonster = "MONSTER"
	EntityTypeItem    = "ITEM"
)

// MoveMode - режим передвижения сущности.
// Влияет на то, насколько сильно стелс мешает её заметить.
type MoveMode uint8

const (
	MoveModeIdle MoveMode = iota
	MoveModeWalk
	MoveModeRun
)

// FieldKind - семантика поля распространения волны
type FieldKind uint8

const (
	FieldSight FieldKind = iota // "могу увидеть"
	FieldReach                  // "могу дойти"
)

func (k FieldKind) String() string {
	if k == FieldReach {
		return "reach"
	}
	return "sight"
}
