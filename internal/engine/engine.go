// internal/engine/engine.go
package engine

import (
	"bayou-chat/internal/engine/actors"
	"bayou-chat/internal/storage"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine owns the long-lived domain actors and hands out their PIDs.
type Engine struct {
	userActor *actor.PID
	chatActor *actor.PID
}

// NewEngine spawns the user and chat actors on the given system. The stores
// are usually the MongoDB repositories and the notifier is the websocket hub.
func NewEngine(
	system *actor.ActorSystem,
	users actors.UserStore,
	messages actors.MessageStore,
	notifier actors.Notifier,
	uploader storage.Uploader,
) *Engine {
	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(users, uploader)
	})
	chatProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewChatActor(users, messages, notifier, uploader)
	})

	return &Engine{
		userActor: system.Root.Spawn(userProps),
		chatActor: system.Root.Spawn(chatProps),
	}
}

func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

func (e *Engine) GetChatActor() *actor.PID {
	return e.chatActor
}
