package events

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/jteer/powertop/internal/errors"
)

// decoder translates raw terminal events into the Event union. It is
// stateful because bracketed paste arrives as a start marker, a run of key
// events, and an end marker; the keys in between are collected into a single
// Paste rather than delivered individually.
type decoder struct {
	pasting bool
	paste   strings.Builder
}

// decode maps one raw event. The second return is false when the raw event
// produced nothing to enqueue, such as a paste fragment or an interrupt wake.
func (d *decoder) decode(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventKey:
		if d.pasting {
			d.collectPasteKey(ev)
			return nil, false
		}
		return Key{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}, true

	case *tcell.EventMouse:
		x, y := ev.Position()
		return Mouse{X: x, Y: y, Buttons: ev.Buttons(), Mod: ev.Modifiers()}, true

	case *tcell.EventResize:
		cols, rows := ev.Size()
		return Resize{Cols: cols, Rows: rows}, true

	case *tcell.EventPaste:
		if ev.Start() {
			d.pasting = true
			d.paste.Reset()
			return nil, false
		}
		d.pasting = false
		text := d.paste.String()
		d.paste.Reset()
		return Paste{Text: text}, true

	case *tcell.EventFocus:
		if ev.Focused {
			return FocusGained{}, true
		}
		return FocusLost{}, true

	case *tcell.EventInterrupt:
		// Posted only to wake a blocked read during shutdown.
		return nil, false

	case *tcell.EventError:
		return Error{Err: errors.WrapWithCode(ev, errors.ErrTerm, "failed to read terminal input", "")}, true

	default:
		return Error{Err: errors.New(errors.ErrEvents,
			fmt.Sprintf("unrecognized terminal event %T", raw), "")}, true
	}
}

func (d *decoder) collectPasteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		d.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		d.paste.WriteByte('\n')
	case tcell.KeyTab:
		d.paste.WriteByte('\t')
	}
}
