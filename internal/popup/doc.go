// Package popup coordinates overlays that share a single dimming backdrop.
//
// A Manager keeps the stack of open overlays, hands out stacking orders,
// owns the shared backdrop node and routes the dismiss key and backdrop
// clicks to the topmost overlay's Controller.
//
// Typical lifecycle of an overlay:
//
//	mgr.Register(id, ctrl)
//	cmd := mgr.Open(id, mgr.NextStackOrder(), popup.WithDimClasses("v-modal-strong"))
//	...
//	cmd = mgr.Close(id)
//	mgr.Deregister(id)
//
// Open and Close return commands that fire the backdrop's transition
// timers. Their messages must be fed back through Manager.Update; each one
// re-checks the manager's state when it arrives, so timers never need to be
// cancelled.
//
// All methods must be called from the Bubble Tea event loop. The Manager is
// not safe for concurrent use.
package popup
