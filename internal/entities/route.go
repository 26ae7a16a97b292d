package entities

type Coordinates struct {
	Lat float64
	Lng float64
}

type RouteStop struct {
	OrderID     string
	Coordinates Coordinates
}

// Route упорядоченная последовательность остановок одного курьерского выезда.
// Живет только в памяти на время сессии курьера, в БД не сохраняется.
// currentIndex двигается только вперед и только через Advance.
type Route struct {
	Stops    []RouteStop
	Excluded []string

	currentIndex int
}

func NewRoute(stops []RouteStop, excluded []string) *Route {
	return &Route{
		Stops:    stops,
		Excluded: excluded,
	}
}

func (r *Route) Len() int {
	return len(r.Stops)
}

func (r *Route) CurrentIndex() int {
	return r.currentIndex
}

// Finished: курсор дошел до конца маршрута.
func (r *Route) Finished() bool {
	return r.currentIndex >= len(r.Stops)
}

// CurrentStop возвращает текущую остановку, ok=false для завершенного маршрута.
func (r *Route) CurrentStop() (RouteStop, bool) {
	if r.Finished() {
		return RouteStop{}, false
	}
	return r.Stops[r.currentIndex], true
}

// Advance сдвигает курсор на следующую остановку.
// Возвращает false если маршрут уже завершен.
func (r *Route) Advance() bool {
	if r.Finished() {
		return false
	}
	r.currentIndex++
	return true
}

// MoveUp меняет остановку index местами с предыдущей.
// Завершенные и текущая остановки не переставляются, выход за границы
// игнорируется: для курьерского UI перестановка всегда безопасна,
// поэтому это no-op а не ошибка.
func (r *Route) MoveUp(index int) {
	if index >= len(r.Stops) || index-1 <= r.currentIndex {
		return
	}
	r.Stops[index-1], r.Stops[index] = r.Stops[index], r.Stops[index-1]
}

// MoveDown меняет остановку index местами со следующей.
func (r *Route) MoveDown(index int) {
	if index <= r.currentIndex || index+1 >= len(r.Stops) {
		return
	}
	r.Stops[index], r.Stops[index+1] = r.Stops[index+1], r.Stops[index]
}
