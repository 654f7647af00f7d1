package domain

// Параметры полей видимости/достижимости
const (
	// FieldHalfWidth - полуширина локального окна поля.
	// Окно всегда FieldSize x FieldSize клеток вокруг origin.
	FieldHalfWidth = 20
	FieldSize      = FieldHalfWidth*2 + 1

	// LightRadius - радиус распространения света от источника
	LightRadius = 10

	// PerceptionFieldRadius - радиус поля при проверках восприятия
	PerceptionFieldRadius = 15

	// ResetRadius - радиус инвалидации кэшей (метрика Чебышева)
	ResetRadius = 18
)

// Параметры расчета стоимости восприятия
const (
	MaxPerceiveDistSq = 1000 // дальше не замечаем вообще
	MaxPerceiveCost   = 200  // порог отсечения итоговой стоимости
	CloseRangeDistSq  = 3    // квадрат дистанции "в упор"
	CloseRangeCost    = 70   // потолок стоимости в упор

	// Делители стелса по режимам движения.
	// Чем больше делитель, тем слабее стелс работает на бегу.
	StealthDivisorIdle = 20
	StealthDivisorWalk = 50
	StealthDivisorRun  = 100

	// MaxDaylight - максимум per-cell коэффициента дневного света
	MaxDaylight = 256
)
