// Package control maps user input to scene changes. Hosts translate their
// own key events into an [Action] and hand it to [Apply]; the scene only
// ever sees the resulting configuration record.
//
// # Usage
//
//	if a, ok := control.Lookup(msg.String()); ok {
//		control.Apply(rt, a)
//	}
package control
