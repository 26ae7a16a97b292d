package assignment

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Coordinator связывает заказ ровно с одним водителем.
// Единственная точка сериализации при гонке за свободного водителя -
// conditional update в DriverRepository.ClaimIfAvailable, никаких
// in-process блокировок здесь нет.
type Coordinator struct {
	log       coordinatorLogger
	drivers   DriverRepository
	orders    OrderRepository
	notifier  Notifier
	txManager TxManager
}

func New(
	log coordinatorLogger,
	drivers DriverRepository,
	orders OrderRepository,
	notifier Notifier,
	txManager TxManager,
) *Coordinator {
	return &Coordinator{
		log:       log.With(),
		drivers:   drivers,
		orders:    orders,
		notifier:  notifier,
		txManager: txManager,
	}
}

// AssignOrder закрепляет заказ за водителем либо ставит его в очередь
// водителя, если тот занят. Проигрыш CAS не ошибка а штатный сигнал
// уйти в ветку очереди.
func (c *Coordinator) AssignOrder(ctx context.Context, orderID string, driverID, companyID int64) (*entities.AssignmentResult, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}
	if !isValidID(companyID) {
		return nil, ErrInvalidCompanyID
	}

	order, err := c.orders.GetByID(ctx, orderID, companyID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !order.Status.Assignable() {
		return nil, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidOrderState)
	}

	driver, err := c.drivers.GetByID(ctx, driverID, companyID)
	if err != nil {
		if errors.Is(err, ErrDriverNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if !driver.IsActive {
		return nil, ErrDriverInactive
	}

	busy := driver.Busy()
	claimed := false
	if !busy {
		claimed, err = c.drivers.ClaimIfAvailable(ctx, driverID)
		if err != nil {
			return nil, fmt.Errorf("claim driver: %w", err)
		}
		busy = !claimed
	}

	// Отмена прочих pending-офферов по заказу - best-effort,
	// на корректность назначения не влияет.
	if _, err := c.orders.CancelPendingOffers(ctx, orderID); err != nil {
		c.log.With(
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		).Warn("cancel pending offers failed")
	}

	var prevDriverID *int64
	if order.AssignedDriverID != nil && *order.AssignedDriverID != driverID {
		prevDriverID = order.AssignedDriverID
	}

	// Повторный вызов с тем же водителем не должен плодить слоты в очереди:
	// заказ уже ждущий этого водителя переподтверждается как назначенный.
	reassert := busy &&
		order.Status == entities.OrderAwaitingDriver &&
		order.AssignedDriverID != nil && *order.AssignedDriverID == driverID

	result := &entities.AssignmentResult{
		OrderID:    orderID,
		DriverID:   driverID,
		DriverName: driver.Name,
	}

	if !busy || reassert {
		status := entities.OrderAwaitingDriver
		if _, err := c.orders.Update(ctx, entities.OrderModify{
			ID:                 &orderID,
			Status:             &status,
			AssignedDriverID:   &driverID,
			ClearQueuePosition: true,
		}); err != nil {
			return nil, fmt.Errorf("update order to awaiting_driver: %w", err)
		}

		if !claimed {
			// Водитель не проходил через CAS в этом вызове:
			// явно переподтверждаем pending_acceptance чтобы состояние
			// водителя не разъехалось с заказом.
			if err := c.drivers.MarkClaimed(ctx, driverID); err != nil {
				c.log.With(
					logger.NewField("driver", driverID),
					logger.NewField("error", err),
				).Warn("reassert driver claim failed")
			}
		}

		result.Status = entities.AssignmentAssigned
		c.releasePrevDriver(ctx, prevDriverID)
		c.notify(ctx, entities.DriverNotification{
			Kind:     entities.NotificationDeliveryOffered,
			DriverID: driverID,
			OrderID:  orderID,
		})
		return result, nil
	}

	// Слот в очереди выдается внутри сериализуемой транзакции:
	// max+1 и запись позиции это read-then-write, два конкурирующих
	// проигравших CAS без транзакции получили бы одинаковую позицию.
	var position int32
	err = c.txManager.Do(ctx, func(ctx context.Context) error {
		maxPosition, err := c.orders.MaxQueuePosition(ctx, driverID)
		if err != nil {
			return fmt.Errorf("compute queue position: %w", err)
		}
		position = maxPosition + 1

		status := entities.OrderQueued
		if _, err := c.orders.Update(ctx, entities.OrderModify{
			ID:               &orderID,
			Status:           &status,
			AssignedDriverID: &driverID,
			QueuePosition:    &position,
		}); err != nil {
			return fmt.Errorf("update order to queued: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("queue order: %w", err)
	}

	result.Status = entities.AssignmentQueued
	result.QueuePosition = &position
	c.releasePrevDriver(ctx, prevDriverID)
	c.notify(ctx, entities.DriverNotification{
		Kind:          entities.NotificationDeliveryQueued,
		DriverID:      driverID,
		OrderID:       orderID,
		QueuePosition: &position,
	})
	return result, nil
}

// CompleteDelivery завершает активную доставку: заказ становится delivered,
// водитель освобождается, затем из очереди водителя продвигается заказ с
// наименьшей позицией и водитель занимается заново через тот же CAS.
func (c *Coordinator) CompleteDelivery(ctx context.Context, orderID string, companyID int64) (*entities.DeliveryCompletion, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(companyID) {
		return nil, ErrInvalidCompanyID
	}

	order, err := c.orders.GetByID(ctx, orderID, companyID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Status != entities.OrderOutForDelivery && order.Status != entities.OrderAwaitingDriver {
		return nil, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidOrderState)
	}
	if order.AssignedDriverID == nil {
		return nil, fmt.Errorf("order %s has no driver: %w", order.ID, ErrInvalidOrderState)
	}
	driverID := *order.AssignedDriverID

	delivered := entities.OrderDelivered
	if _, err := c.orders.Update(ctx, entities.OrderModify{
		ID:                 &orderID,
		Status:             &delivered,
		ClearQueuePosition: true,
	}); err != nil {
		return nil, fmt.Errorf("update order to delivered: %w", err)
	}

	promotedID, err := c.releaseAndPromote(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("release driver %d: %w", driverID, err)
	}

	completion := &entities.DeliveryCompletion{
		OrderID:         orderID,
		DriverID:        driverID,
		DriverStatus:    entities.DriverAvailable,
		PromotedOrderID: promotedID,
	}

	c.notify(ctx, entities.DriverNotification{
		Kind:     entities.NotificationStopCompleted,
		DriverID: driverID,
		OrderID:  orderID,
	})

	if promotedID != nil {
		completion.DriverStatus = entities.DriverPendingAcceptance
		c.notify(ctx, entities.DriverNotification{
			Kind:     entities.NotificationDeliveryOffered,
			DriverID: driverID,
			OrderID:  *promotedID,
		})
	}
	return completion, nil
}

// ConfirmPickup фиксирует принятие доставки водителем: заказ переходит в
// out_for_delivery, водитель в in_delivery. Приходит событием платформы.
func (c *Coordinator) ConfirmPickup(ctx context.Context, orderID string, companyID int64) error {
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}
	if !isValidID(companyID) {
		return ErrInvalidCompanyID
	}

	order, err := c.orders.GetByID(ctx, orderID, companyID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("get order: %w", err)
	}
	if order.Status != entities.OrderAwaitingDriver {
		return fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidOrderState)
	}
	if order.AssignedDriverID == nil {
		return fmt.Errorf("order %s has no driver: %w", order.ID, ErrInvalidOrderState)
	}

	status := entities.OrderOutForDelivery
	if _, err := c.orders.Update(ctx, entities.OrderModify{
		ID:     &orderID,
		Status: &status,
	}); err != nil {
		return fmt.Errorf("update order to out_for_delivery: %w", err)
	}

	if err := c.drivers.MarkInDelivery(ctx, *order.AssignedDriverID); err != nil {
		return fmt.Errorf("mark driver %d in delivery: %w", *order.AssignedDriverID, err)
	}
	return nil
}

// CancelAssignment обрабатывает отмену заказа платформой.
// Заказ в очереди просто выпадает из нее, активный заказ дополнительно
// освобождает водителя и продвигает очередь.
func (c *Coordinator) CancelAssignment(ctx context.Context, orderID string, companyID int64) error {
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}
	if !isValidID(companyID) {
		return ErrInvalidCompanyID
	}

	order, err := c.orders.GetByID(ctx, orderID, companyID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("get order: %w", err)
	}
	if order.Status.Terminal() {
		return fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidOrderState)
	}

	cancelled := entities.OrderCancelled
	if _, err := c.orders.Update(ctx, entities.OrderModify{
		ID:                 &orderID,
		Status:             &cancelled,
		ClearDriver:        true,
		ClearQueuePosition: true,
	}); err != nil {
		return fmt.Errorf("update order to cancelled: %w", err)
	}

	// Водителя держал только активный заказ, у queued/ready его нет.
	if order.AssignedDriverID != nil && order.Status != entities.OrderQueued {
		promotedID, err := c.releaseAndPromote(ctx, *order.AssignedDriverID)
		if err != nil {
			return fmt.Errorf("release driver %d: %w", *order.AssignedDriverID, err)
		}
		if promotedID != nil {
			c.notify(ctx, entities.DriverNotification{
				Kind:     entities.NotificationDeliveryOffered,
				DriverID: *order.AssignedDriverID,
				OrderID:  *promotedID,
			})
		}
	}
	return nil
}

// CompactQueuePositions лениво перенумеровывает очереди водителей в плотные
// последовательности. Вызывается фоновой задачей, корректность назначения
// от нее не зависит: max+1 валиден и при дырках.
func (c *Coordinator) CompactQueuePositions(ctx context.Context) (int64, error) {
	rowsAffected, err := c.orders.CompactQueuePositions(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("queue compaction timed out: %w", err)
		}
		return 0, fmt.Errorf("queue compaction: %w", err)
	}
	return rowsAffected, nil
}

// releaseAndPromote в одной сериализуемой транзакции возвращает водителя
// в available и, если у него есть очередь, продвигает заказ с наименьшей
// позицией и заново занимает водителя через CAS из AssignOrder.
func (c *Coordinator) releaseAndPromote(ctx context.Context, driverID int64) (*string, error) {
	var promotedID *string

	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		if err := c.drivers.Release(ctx, driverID); err != nil {
			return fmt.Errorf("release driver: %w", err)
		}

		next, err := c.orders.NextQueued(ctx, driverID)
		if err != nil {
			if errors.Is(err, ErrQueueEmpty) {
				return nil
			}
			return fmt.Errorf("next queued order: %w", err)
		}

		status := entities.OrderAwaitingDriver
		if _, err := c.orders.Update(ctx, entities.OrderModify{
			ID:                 &next.ID,
			Status:             &status,
			ClearQueuePosition: true,
		}); err != nil {
			return fmt.Errorf("promote order %s: %w", next.ID, err)
		}

		claimed, err := c.drivers.ClaimIfAvailable(ctx, driverID)
		if err != nil {
			return fmt.Errorf("reclaim driver: %w", err)
		}
		if !claimed {
			// Внутри транзакции водитель только что освобожден нами же,
			// проигрыш здесь означает параллельный claim снаружи.
			c.log.With(
				logger.NewField("driver", driverID),
				logger.NewField("order", next.ID),
			).Warn("driver reclaimed concurrently during promotion")
			if err := c.drivers.MarkClaimed(ctx, driverID); err != nil {
				return fmt.Errorf("reassert claim: %w", err)
			}
		}

		promotedID = &next.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promotedID, nil
}

func (c *Coordinator) releasePrevDriver(ctx context.Context, prevDriverID *int64) {
	if prevDriverID == nil {
		return
	}
	// Занятый водитель просто будет заявлен заново следующим назначением,
	// поэтому достаточно поднять флаг без дополнительных проверок.
	if err := c.drivers.Release(ctx, *prevDriverID); err != nil {
		c.log.With(
			logger.NewField("driver", *prevDriverID),
			logger.NewField("error", err),
		).Warn("release previous driver failed")
	}
}

// notify всегда fire-and-forget: доставка уведомления не блокирует и не
// откатывает уже совершившийся переход статуса.
func (c *Coordinator) notify(ctx context.Context, notification entities.DriverNotification) {
	if err := c.notifier.Notify(ctx, notification); err != nil {
		c.log.With(
			logger.NewField("driver", notification.DriverID),
			logger.NewField("order", notification.OrderID),
			logger.NewField("kind", string(notification.Kind)),
			logger.NewField("error", err),
		).Warn("driver notification failed")
	}
}
