package notify

import (
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/directory"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/push"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/social"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/store"
)

func NewNotify(dir directory.Directory, sender push.Sender, recordStore store.RecordStore, graph social.Graph) *Handler {
	useCase := NewUseCase(dir, sender, recordStore, graph)
	return NewHandler(useCase)
}
