package service

// Broadcaster pushes bot activity to connected admin dashboards (avoids
// an import cycle with the ws package)
type Broadcaster interface {
	BroadcastEvent(msgType string, payload interface{})
}

// NopBroadcaster is used when no dashboard hub is wired up.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastEvent(msgType string, payload interface{}) {}
