package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"percept-server/internal/domain"
	"percept-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/tile", h.handleTile)
	mux.HandleFunc("/debug/field", h.handleField)
	mux.HandleFunc("/debug/perceive", h.handlePerceive)
}

// /debug/entities - дамп всех сущностей (включая скрытые компоненты)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.EntityDump())
}

// /debug/tile?x=5&y=7 - состояние клетки: флаги, свет, дневной свет
func (h *DebugHandler) handleTile(w http.ResponseWriter, r *http.Request) {
	var x, y int
	fmt.Sscanf(r.URL.Query().Get("x"), "%d", &x)
	fmt.Sscanf(r.URL.Query().Get("y"), "%d", &y)

	tile, ok := h.Service.TileInfo(x, y)
	if !ok {
		http.Error(w, "Tile out of bounds", http.StatusNotFound)
		return
	}
	writeJSON(w, tile)
}

// /debug/field?observer=npc_1&kind=reach - окно рангов волны наблюдателя.
// kind по умолчанию sight.
func (h *DebugHandler) handleField(w http.ResponseWriter, r *http.Request) {
	observerID := r.URL.Query().Get("observer")

	kind := domain.FieldSight
	if r.URL.Query().Get("kind") == "reach" {
		kind = domain.FieldReach
	}

	rows, ok := h.Service.FieldDump(observerID, kind)
	if !ok {
		http.Error(w, "Observer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rows)
}

// /debug/perceive?observer=npc_1&target=npc_2 - стоимость восприятия
func (h *DebugHandler) handlePerceive(w http.ResponseWriter, r *http.Request) {
	observerID := r.URL.Query().Get("observer")
	targetID := r.URL.Query().Get("target")

	cost := h.Service.CanPerceiveEntity(observerID, targetID)
	writeJSON(w, map[string]int{"cost": cost})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
