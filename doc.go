/*
Package rack provides the windowing, rendering and widget-event core of a
modular synthesizer rack GUI.

# Overview

The UI is a retained tree of widgets rooted at a Scene. Widgets embed Base,
which forwards positional events to the topmost visible child under the
cursor, translating the position into the child's coordinates. A widget
claims an event by setting Consumed and naming itself as Target.

Interaction owns the four pieces of per-window state the tree relies on:

	hovered      the widget under the cursor
	focused      the widget receiving text and keys
	dragged      the widget being dragged with the primary button
	dragHovered  the widget under the cursor while dragging

These are independent. A widget may be focused and hovered at once.

# Frame Loop

A backend drives one frame at a time:

	for !window.ShouldClose() {
	    waitEvents(timeout)           // OS callbacks call ui.Scroll, ui.Key, ...
	    ui.MoveCursor(pollCursor())   // at most one move per frame
	    ui.ReplayButton()             // at most one button transition per frame
	    ui.Step()
	    if visible {
	        present(ui.Render(canvas, fbW, fbH))
	    }
	    timeout = pacer.Next(elapsed)
	}

Mouse buttons are queued by SubmitButton and replayed one per frame, so a
burst of clicks is dispatched in arrival order across consecutive frames.

# Drag and Drop

A primary press on a widget makes it the drag candidate: it receives
DragStart and becomes dragged. Moves send DragMove with the relative motion
and DragEnter/DragLeave to the widgets passed over. On release the widget
under the cursor receives DragDrop with the dragged widget as origin, then
the dragged widget receives DragEnd unless the drop handler called
ClearDragged.

Menu items accept a drop from any button, so a right-click menu can be
chosen with either button.

# Rendering

Canvas wraps a gogpu/gg software context. BeginFrame clears, resets the
transform and scales by the pixel ratio, so widgets draw in logical units.
Images and fonts are registered as integer handles; 0 is invalid and
drawing with it does nothing.

The palette is derived from two colors by SetTheme and published with one
atomic store. Widgets read CurrentTheme on every draw and never cache it.

# Logging

All packages log through Logger. SetVerbose toggles debug output on the
default handler; SetLogger installs another one.
*/
package rack
