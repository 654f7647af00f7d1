package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно генератора демо-карты. Одно зерно - один и тот же мир.
	Seed int64

	// TickInterval - период цикла симуляции (день/ночь, рассылка снапшотов)
	TickInterval time.Duration

	// DayLength - длина полного цикла день/ночь в тиках
	DayLength int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		TickInterval: 500 * time.Millisecond,
		DayLength:    240,
	}
}
