package domain

// RankField - локальное окно рангов волны вокруг origin.
// 0 = клетка не достигнута, 1 = origin, N = достигнута на кольце N-1.
// Координаты окна: fx = x - origin.X + FieldHalfWidth (аналогично fy).
type RankField [FieldSize * FieldSize]int8

// InWindow проверяет, что координата окна лежит внутри буфера
func InWindow(fx, fy int) bool {
	return fx >= 0 && fx < FieldSize && fy >= 0 && fy < FieldSize
}

// At возвращает ранг клетки окна (0 за границей окна)
func (f *RankField) At(fx, fy int) int8 {
	if !InWindow(fx, fy) {
		return 0
	}
	return f[fy*FieldSize+fx]
}

// Set записывает ранг клетки окна. Координата обязана быть внутри окна.
func (f *RankField) Set(fx, fy int, rank int8) {
	f[fy*FieldSize+fx] = rank
}

// Reset очищает окно перед новым построением
func (f *RankField) Reset() {
	*f = RankField{}
}

// NoOrigin - сентинел для кэш-слотов: никогда не равен реальной координате,
// поэтому следующий запрос гарантированно перестроит поле.
var NoOrigin = Position{X: -1, Y: -1}

// VisionComponent - кэш-слот поля видимости сущности.
// Создается лениво при первом запросе, инвалидируется через ResetGO.
type VisionComponent struct {
	Origin Position
	Kind   FieldKind
	Radius int
	Field  *RankField
}

// NewVisionComponent создает пустой инвалидированный слот
func NewVisionComponent() *VisionComponent {
	return &VisionComponent{Origin: NoOrigin, Field: &RankField{}}
}

// Invalidate сбрасывает origin слота в сентинел
func (v *VisionComponent) Invalidate() {
	v.Origin = NoOrigin
}

// Matches: слот можно переиспользовать для запроса с такими параметрами
func (v *VisionComponent) Matches(origin Position, kind FieldKind, radius int) bool {
	return v.Origin == origin && v.Kind == kind && v.Radius == radius && v.Field != nil
}
