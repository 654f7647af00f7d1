package api

import "percept-server/internal/domain"

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - команда debug-клиента. Клиент здесь не игрок, а инструмент
// наблюдения: он мутирует ландшафт и задает вопросы движку восприятия.
type ClientCommand struct {
	// Action: PERCEIVE, PERCEIVE_ITEM, REACH, SET_DOOR,
	// ADD_LIGHT, REMOVE_LIGHT, RESCAN_LIGHTS
	Action string `json:"action"`

	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	ToX int `json:"toX,omitempty"`
	ToY int `json:"toY,omitempty"`

	Strength int  `json:"strength,omitempty"` // для ADD_LIGHT / REMOVE_LIGHT
	Closed   bool `json:"closed,omitempty"`   // для SET_DOOR

	ObserverID string `json:"observerId,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// EntityView - сущность глазами debug-клиента
type EntityView struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Name string          `json:"name"`
	Pos  domain.Position `json:"pos"`

	// Visible: ID цели -> стоимость восприятия (только ненулевые)
	Visible map[string]int `json:"visible,omitempty"`
}

// ServerResponse - кадр состояния или ответ на команду
type ServerResponse struct {
	Type string `json:"type"` // "SNAPSHOT", "RESULT", "ERROR"

	Tick     int `json:"tick,omitempty"`
	Daylight int `json:"daylight,omitempty"`

	Entities []EntityView `json:"entities,omitempty"`

	// Для RESULT: ответ движка на PERCEIVE / REACH
	Cost      int  `json:"cost,omitempty"`
	Reachable bool `json:"reachable,omitempty"`

	Message string `json:"message,omitempty"`
}
