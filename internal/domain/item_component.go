package domain

// ItemComponent описывает предмет в игре.
// Любая Entity с этим компонентом становится предметом.
// Движок восприятия читает отсюда блокирующие флаги, скрытность и свет.
type ItemComponent struct {
	// Физические свойства
	SightBlock bool `json:"sightBlock"` // не пропускает взгляд (шкаф, статуя)
	MoveBlock  bool `json:"moveBlock"`  // не пропускает движение

	// Скрытность
	Hidden         bool `json:"hidden,omitempty"`         // спрятан (тайник, ловушка)
	HiddenStrength int  `json:"hiddenStrength,omitempty"` // насколько хорошо спрятан

	// Излучение света. Активное и пассивное состояние могут отличаться:
	// зажженный факел против погашенного.
	Active                bool `json:"active"`
	LightStrength         int  `json:"lightStrength,omitempty"`
	LightStrengthInactive int  `json:"lightStrengthInactive,omitempty"`
}

// Emission возвращает текущую силу излучения предмета
func (it *ItemComponent) Emission() int {
	if it == nil {
		return 0
	}
	if it.Active {
		return it.LightStrength
	}
	return it.LightStrengthInactive
}
