package route

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Sequencer строит порядок объезда для пачки назначенных заказов и
// ведет курьера по маршруту остановка за остановкой.
type Sequencer struct {
	log       sequencerLogger
	geocoder  Geocoder
	completer OrderCompleter
}

func New(log sequencerLogger, geocoder Geocoder, completer OrderCompleter) *Sequencer {
	return &Sequencer{
		log:       log.With(),
		geocoder:  geocoder,
		completer: completer,
	}
}

type OrderAddress struct {
	OrderID string
	Address string
}

// BuildRoute геокодирует адреса заказов (параллельно, по одному запросу на
// заказ) и упорядочивает их жадным ближайшим соседом от позиции водителя.
// Заказ с неудачным геокодированием попадает в Excluded в исходном порядке
// и не валит построение всего маршрута.
func (s *Sequencer) BuildRoute(ctx context.Context, driverPosition entities.Coordinates, orders []OrderAddress) (*entities.Route, error) {
	resolved := make([]*entities.Coordinates, len(orders))

	// scatter/gather: барьер до начала упорядочивания,
	// отмены отдельных lookup-ов нет.
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range orders {
		group.Go(func() error {
			coordinates, err := s.geocoder.Resolve(groupCtx, orders[i].Address)
			if err != nil {
				s.log.With(
					logger.NewField("order", orders[i].OrderID),
					logger.NewField("error", err),
				).Warn("geocoding failed, order excluded from route optimization")
				return nil
			}
			resolved[i] = &coordinates
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("geocode orders: %w", err)
	}

	var excluded []string
	type candidate struct {
		orderID     string
		coordinates entities.Coordinates
	}
	candidates := make([]candidate, 0, len(orders))
	for i := range orders {
		if resolved[i] == nil {
			excluded = append(excluded, orders[i].OrderID)
			continue
		}
		candidates = append(candidates, candidate{
			orderID:     orders[i].OrderID,
			coordinates: *resolved[i],
		})
	}

	// Ближайший сосед: евклидово расстояние прямо по lat/lng - сознательное
	// приближение, дистанции доставки короткие. Тай-брейк строгим "<":
	// при равенстве побеждает более ранний во входном списке.
	stops := make([]entities.RouteStop, 0, len(candidates))
	position := driverPosition
	visited := make([]bool, len(candidates))
	for range candidates {
		best := -1
		bestDistance := 0.0
		for i := range candidates {
			if visited[i] {
				continue
			}
			distance := squaredDistance(position, candidates[i].coordinates)
			if best == -1 || distance < bestDistance {
				best = i
				bestDistance = distance
			}
		}
		visited[best] = true
		stops = append(stops, entities.RouteStop{
			OrderID:     candidates[best].orderID,
			Coordinates: candidates[best].coordinates,
		})
		position = candidates[best].coordinates
	}

	return entities.NewRoute(stops, excluded), nil
}

// CompleteCurrentStop отмечает текущую остановку доставленной через
// координатор назначений и сдвигает курсор. Для завершенного маршрута
// это no-op. При ошибке завершения курсор не двигается.
func (s *Sequencer) CompleteCurrentStop(ctx context.Context, activeRoute *entities.Route, companyID int64) (*entities.DeliveryCompletion, error) {
	stop, ok := activeRoute.CurrentStop()
	if !ok {
		return nil, nil
	}

	completion, err := s.completer.CompleteDelivery(ctx, stop.OrderID, companyID)
	if err != nil {
		return nil, fmt.Errorf("complete stop %s: %w", stop.OrderID, err)
	}

	activeRoute.Advance()
	return completion, nil
}

func squaredDistance(a, b entities.Coordinates) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return dLat*dLat + dLng*dLng
}
