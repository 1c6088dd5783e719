package app

import (
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/pkg/common"
)

// TopicAdminOperation carries audit events for admin mutations.
const TopicAdminOperation = "admin.operation"

// OperationEvent is published by the admin API after every successful mutation.
type OperationEvent struct {
	OprName string
	OprIP   string
	Action  string
	Desc    string
}

func (a *Application) initBus() {
	a.bus = EventBus.New()
	if err := a.bus.Subscribe(TopicAdminOperation, a.onOperationEvent); err != nil {
		zap.L().Error("failed to subscribe operation log handler", zap.Error(err))
	}
}

func (a *Application) onOperationEvent(evt OperationEvent) {
	err := a.gormDB.Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   evt.OprName,
		OprIp:     evt.OprIP,
		OptAction: evt.Action,
		OptDesc:   evt.Desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.L().Error("failed to write operation log", zap.Error(err))
	}
}

// PublishOperation emits an audit event on the bus. Delivery is synchronous;
// a failed log write never fails the originating request.
func (a *Application) PublishOperation(evt OperationEvent) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(TopicAdminOperation, evt)
}
