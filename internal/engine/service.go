package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"percept-server/internal/domain"
	"percept-server/internal/network"
	"percept-server/internal/systems"
	"percept-server/pkg/api"
	"percept-server/pkg/dungeon"
	"percept-server/pkg/logger"
)

// GameService - фасад движка восприятия. Все операции над миром идут
// через него и сериализуются одним мьютексом: поля зрения, свет и
// кэши не рассчитаны на конкурентную мутацию.
type GameService struct {
	World *domain.GameWorld
	Cache *systems.FieldCache
	Hub   *network.Broadcaster

	cfg Config
	mu  sync.Mutex

	quit chan struct{}
	log  *logrus.Entry
}

func NewService(cfg Config) *GameService {
	log := logger.WithComponent("engine")

	// 1. Генерация демо-мира: ландшафт, предметы, обитатели
	world, entities := dungeon.Generate(cfg.Seed)

	// 2. Регистрация сущностей в индексах мира
	for _, e := range entities {
		world.AddEntity(e)
		world.RegisterEntity(e)
	}

	s := &GameService{
		World: world,
		Cache: systems.NewFieldCache(world),
		Hub:   network.NewBroadcaster(),
		cfg:   cfg,
		quit:  make(chan struct{}),
		log:   log,
	}

	s.initLighting()

	log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"width":    world.Width,
		"height":   world.Height,
		"entities": len(world.EntityRegistry),
		"items":    len(world.ItemRegistry),
	}).Info("World generated")

	return s
}

// initLighting заполняет статичную световую картину после генерации:
// коэффициенты просачивания дневного света для всех помещений и один
// проход сбора источников по сетке непересекающихся окон.
func (s *GameService) initLighting() {
	for y := 0; y < s.World.Height; y++ {
		for x := 0; x < s.World.Width; x++ {
			if s.World.Map[y][x].Indoor {
				systems.ComputeDaylight(s.Cache, x, y)
			}
		}
	}

	// Шаг 2R+1 гарантирует, что окна сбора не перекрываются и каждый
	// источник будет учтен ровно один раз
	step := 2*domain.LightRadius + 1
	for y := domain.LightRadius; y < s.World.Height+domain.LightRadius; y += step {
		for x := domain.LightRadius; x < s.World.Width+domain.LightRadius; x += step {
			systems.AddLights(s.Cache, x, y)
		}
	}
}

func (s *GameService) Start() {
	go s.runLoop()
}

func (s *GameService) Stop() {
	close(s.quit)
}

// runLoop ведет глобальное время и цикл день/ночь, рассылая снапшоты
func (s *GameService) runLoop() {
	s.log.WithField("interval", s.cfg.TickInterval).Info("Simulation loop started")

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			s.log.Info("Simulation loop stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *GameService) tick() {
	s.mu.Lock()
	s.World.GlobalTick++
	s.World.GlobalDaylight = daylightAt(s.World.GlobalTick, s.cfg.DayLength)
	snap := s.buildSnapshot()
	s.mu.Unlock()

	s.Hub.Broadcast(snap)
}

// daylightAt - треугольная волна 0..MaxDaylight за полный цикл день/ночь
func daylightAt(tick, dayLength int) int {
	if dayLength <= 0 {
		return domain.MaxDaylight
	}
	half := dayLength / 2
	phase := tick % dayLength
	if phase < half {
		return domain.MaxDaylight * phase / half
	}
	return domain.MaxDaylight * (dayLength - phase) / half
}

// --- ОПЕРАЦИИ ВОСПРИЯТИЯ ---

// CanPerceiveEntity возвращает стоимость восприятия цели наблюдателем
// (0 - не воспринимается). Неизвестные ID дают 0 с предупреждением.
func (s *GameService) CanPerceiveEntity(observerID, targetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	observer := s.World.GetEntity(observerID)
	target := s.World.GetEntity(targetID)
	if observer == nil || target == nil {
		s.log.WithFields(logrus.Fields{
			"observer": observerID,
			"target":   targetID,
		}).Warn("Perceive query with unknown entity ID")
		return 0
	}
	return systems.CanPerceiveEntity(s.Cache, observer, target)
}

// CanPerceiveItem возвращает стоимость обнаружения предмета на карте
func (s *GameService) CanPerceiveItem(observerID, itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	observer := s.World.GetEntity(observerID)
	item := s.World.GetItem(itemID)
	if observer == nil || item == nil {
		s.log.WithFields(logrus.Fields{
			"observer": observerID,
			"item":     itemID,
		}).Warn("Item perceive query with unknown ID")
		return 0
	}
	return systems.CanPerceiveItem(s.Cache, observer, item)
}

// CanReach проверяет досягаемость клетки волной проходимости
func (s *GameService) CanReach(from, to domain.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.CanReach(s.Cache, from, to)
}

// --- ОПЕРАЦИИ НАД СВЕТОМ ---

func (s *GameService) AddLight(x, y, strength int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systems.AddLight(s.Cache, x, y, strength)
}

func (s *GameService) RemoveLight(x, y, strength int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systems.RemoveLight(s.Cache, x, y, strength)
}

// AddLights включает свет всех источников в окне вокруг точки
func (s *GameService) AddLights(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systems.AddLights(s.Cache, x, y)
}

// RemoveLights снимает свет всех источников в окне вокруг точки
func (s *GameService) RemoveLights(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systems.RemoveLights(s.Cache, x, y)
}

// RescanLights пересобирает свет в окне вокруг точки: снимает вклад
// всех источников и накладывает заново по текущему состоянию мира
func (s *GameService) RescanLights(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	systems.RemoveLights(s.Cache, x, y)
	systems.AddLights(s.Cache, x, y)
}

// --- ОПЕРАЦИИ НАД ЛАНДШАФТОМ ---

// ResetFields инвалидирует кэши полей после изменения геометрии в (x, y)
func (s *GameService) ResetFields(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cache.ResetGO(x, y)
}

// SetDoor открывает или закрывает дверь: меняется и проходимость, и
// прозрачность, затем сбрасываются кэши и пересчитывается дневной
// свет в затронутых помещениях.
func (s *GameService) SetDoor(x, y int, closed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tile := s.World.TileAt(x, y)
	if tile == nil {
		return fmt.Errorf("door position (%d, %d) is out of bounds", x, y)
	}

	// Свет снимаем ДО изменения геометрии: обратный проход должен
	// идти по тому же полю зрения, что и прямой
	systems.RemoveLights(s.Cache, x, y)

	tile.SightBlock = closed
	tile.MoveBlock = closed
	s.Cache.ResetGO(x, y)

	systems.AddLights(s.Cache, x, y)
	s.recomputeDaylightAround(x, y)

	s.log.WithFields(logrus.Fields{
		"x": x, "y": y, "closed": closed,
	}).Info("Door toggled")
	return nil
}

// PlaceItem кладет предмет на клетку и встраивает его в мир: блокирующий
// предмет сбрасывает кэши полей, светящийся - добавляет свой свет
func (s *GameService) PlaceItem(item *domain.Entity, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.World.PlaceItem(item, x, y); err != nil {
		return err
	}

	if item.Item.SightBlock || item.Item.MoveBlock {
		s.Cache.ResetGO(x, y)
	}
	if em := item.Item.Emission(); em > 0 {
		systems.AddLight(s.Cache, x, y, em)
	}
	if item.Item.SightBlock {
		s.recomputeDaylightAround(x, y)
	}
	return nil
}

// RemoveItemAt снимает предмет с клетки, откатывая его вклад в свет и поля
func (s *GameService) RemoveItemAt(x, y int) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.World.ItemAt(x, y)
	if item == nil {
		return nil, fmt.Errorf("no item at (%d, %d)", x, y)
	}

	// Свет откатываем до изменения геометрии (симметрия с PlaceItem)
	if em := item.Item.Emission(); em > 0 {
		systems.RemoveLight(s.Cache, x, y, em)
	}

	s.World.TakeItemAt(x, y)

	if item.Item.SightBlock || item.Item.MoveBlock {
		s.Cache.ResetGO(x, y)
	}
	if item.Item.SightBlock {
		s.recomputeDaylightAround(x, y)
	}
	return item, nil
}

// recomputeDaylightAround обновляет коэффициенты просачивания в окне,
// которое могло быть затронуто изменением прозрачности в (x, y)
func (s *GameService) recomputeDaylightAround(x, y int) {
	r := domain.FieldHalfWidth
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			tile := s.World.TileAt(x+dx, y+dy)
			if tile != nil && tile.Indoor {
				systems.ComputeDaylight(s.Cache, x+dx, y+dy)
			}
		}
	}
}

// --- СНАПШОТЫ ---

// Snapshot строит кадр мира для debug-клиентов
func (s *GameService) Snapshot() api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildSnapshot()
}

// buildSnapshot вызывается под мьютексом
func (s *GameService) buildSnapshot() api.ServerResponse {
	views := make([]api.EntityView, 0, len(s.World.EntityRegistry))

	for _, e := range s.World.EntityRegistry {
		view := api.EntityView{
			ID:   e.ID,
			Type: e.Type,
			Name: e.Name,
			Pos:  e.Pos,
		}

		// Для каждой активной сущности считаем, кого она воспринимает
		if e.IsActive() && e.Percept != nil {
			visible := make(map[string]int)
			for _, other := range s.World.EntityRegistry {
				if other.ID == e.ID {
					continue
				}
				if cost := systems.CanPerceiveEntity(s.Cache, e, other); cost > 0 {
					visible[other.ID] = cost
				}
			}
			if len(visible) > 0 {
				view.Visible = visible
			}
		}

		views = append(views, view)
	}

	return api.ServerResponse{
		Type:     "SNAPSHOT",
		Tick:     s.World.GlobalTick,
		Daylight: s.World.GlobalDaylight,
		Entities: views,
	}
}

// --- ОТЛАДОЧНЫЙ ДОСТУП ---

// TileInfo возвращает копию клетки для debug-эндпоинтов
func (s *GameService) TileInfo(x, y int) (domain.Tile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tile := s.World.TileAt(x, y)
	if tile == nil {
		return domain.Tile{}, false
	}
	return *tile, true
}

// EntityDump возвращает копии всех сущностей, включая скрытые компоненты
func (s *GameService) EntityDump() []domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Entity, 0, len(s.World.EntityRegistry))
	for _, e := range s.World.EntityRegistry {
		out = append(out, *e)
	}
	return out
}

// FieldDump строит поле наблюдателя и отдает окно рангов построчно
func (s *GameService) FieldDump(observerID string, kind domain.FieldKind) ([][]int8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	observer := s.World.GetEntity(observerID)
	if observer == nil {
		return nil, false
	}

	field := s.Cache.FieldFor(observer, observer.Pos, domain.PerceptionFieldRadius, kind)
	rows := make([][]int8, domain.FieldSize)
	for fy := 0; fy < domain.FieldSize; fy++ {
		row := make([]int8, domain.FieldSize)
		for fx := 0; fx < domain.FieldSize; fx++ {
			row[fx] = field.At(fx, fy)
		}
		rows[fy] = row
	}
	return rows, true
}

// --- КОМАНДЫ ---

// HandleCommand выполняет команду debug-клиента и возвращает ответ
func (s *GameService) HandleCommand(cmd api.ClientCommand) api.ServerResponse {
	if err := cmd.Validate(); err != nil {
		return api.ServerResponse{Type: "ERROR", Message: err.Error()}
	}

	switch cmd.Action {
	case "PERCEIVE":
		cost := s.CanPerceiveEntity(cmd.ObserverID, cmd.TargetID)
		return api.ServerResponse{Type: "RESULT", Cost: cost}

	case "PERCEIVE_ITEM":
		cost := s.CanPerceiveItem(cmd.ObserverID, cmd.TargetID)
		return api.ServerResponse{Type: "RESULT", Cost: cost}

	case "REACH":
		ok := s.CanReach(
			domain.Position{X: cmd.X, Y: cmd.Y},
			domain.Position{X: cmd.ToX, Y: cmd.ToY},
		)
		return api.ServerResponse{Type: "RESULT", Reachable: ok}

	case "SET_DOOR":
		if err := s.SetDoor(cmd.X, cmd.Y, cmd.Closed); err != nil {
			return api.ServerResponse{Type: "ERROR", Message: err.Error()}
		}
		return api.ServerResponse{Type: "RESULT", Message: "door updated"}

	case "ADD_LIGHT":
		s.AddLight(cmd.X, cmd.Y, cmd.Strength)
		return api.ServerResponse{Type: "RESULT", Message: "light added"}

	case "REMOVE_LIGHT":
		s.RemoveLight(cmd.X, cmd.Y, cmd.Strength)
		return api.ServerResponse{Type: "RESULT", Message: "light removed"}

	case "RESCAN_LIGHTS":
		s.RescanLights(cmd.X, cmd.Y)
		return api.ServerResponse{Type: "RESULT", Message: "lights rescanned"}

	default:
		s.log.WithField("action", cmd.Action).Warn("Unknown client action")
		return api.ServerResponse{
			Type:    "ERROR",
			Message: fmt.Sprintf("unknown action %q", cmd.Action),
		}
	}
}
