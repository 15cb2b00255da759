package csg

import (
	"reflect"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestInspectObservesEvents(t *testing.T) {
	a := Cube(v3.Vec{X: -0.5}, 1)
	b := Cube(v3.Vec{X: +0.5}, 1)

	seen := make(map[Event]int)
	clipDetails := 0

	c := MergeWith(a, b, Options{
		Inspect: func(event Event, detail *Node) Action {
			seen[event]++
			if detail != nil {
				if event != ClipEvent {
					t.Errorf("%v event carries a detail tree", event)
				}
				clipDetails++
			}
			return Proceed
		},
	})

	if c.Err() != NoError {
		t.Fatalf("MergeWith: %v", c.Err())
	}

	for _, event := range []Event{BuildEvent, InvertEvent, ClipEvent} {
		if seen[event] == 0 {
			t.Errorf("no %v events observed", event)
		}
	}
	if clipDetails != seen[ClipEvent] {
		t.Errorf("%d of %d clip events carried a detail tree", clipDetails, seen[ClipEvent])
	}

	// A hook that always proceeds does not change the outcome.
	if plain := Merge(a, b); !reflect.DeepEqual(c.Polygons(), plain.Polygons()) {
		t.Error("inspected merge differs from plain merge")
	}
}

func TestInspectAbortsBuild(t *testing.T) {
	a := Cube(v3.Vec{X: -0.5}, 1)
	b := Cube(v3.Vec{X: +0.5}, 1)

	c := MergeWith(a, b, Options{
		Inspect: func(Event, *Node) Action { return Abort },
	})

	if got := c.Err(); got != AbortedError {
		t.Fatalf("error = %v, want AbortedError", got)
	}
	if len(c.Polygons()) != 0 {
		t.Error("aborted merge carries polygons")
	}
}

func TestInspectAbortsMidway(t *testing.T) {
	a := Cube(v3.Vec{X: -0.5}, 1)
	b := Cube(v3.Vec{X: +0.5}, 1)

	// Let tree construction pass, then deny everything that follows. The
	// final flattening rebuild reports the stop.
	remaining := 2

	c := SubtractWith(a, b, Options{
		Inspect: func(event Event, detail *Node) Action {
			if event == BuildEvent && remaining > 0 {
				remaining--
				return Proceed
			}
			return Abort
		},
	})

	if got := c.Err(); got != AbortedError {
		t.Fatalf("error = %v, want AbortedError", got)
	}
}

func TestInspectInheritedByChildren(t *testing.T) {
	events := 0

	node := &Node{}
	node.SetInspector(func(Event, *Node) Action {
		events++
		return Proceed
	})

	if err := node.Build(Cube(v3.Vec{}, 1).Polygons(), 0); err != NoError {
		t.Fatalf("Build: %v", err)
	}

	// The cube builds a six-node chain; every node reports its build.
	if events != 6 {
		t.Errorf("observed %d build events, want 6", events)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{BuildEvent, "build"},
		{InvertEvent, "invert"},
		{ClipEvent, "clip"},
		{Event(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Event(%d).String() = %q, want %q", int(tt.event), got, tt.want)
		}
	}
}
