package feather2d

import "github.com/akmonengine/feather2d/actor"

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA actor.BodyID
	bodyB actor.BodyID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB actor.BodyID) pairKey {
	if bodyB < bodyA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "enter"
	case COLLISION_STAY:
		return "stay"
	case COLLISION_EXIT:
		return "exit"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Pair() (actor.BodyID, actor.BodyID)
}

// CollisionEnterEvent is sent on the first step a pair is in contact
type CollisionEnterEvent struct {
	BodyA actor.BodyID
	BodyB actor.BodyID
}

func (e CollisionEnterEvent) Type() EventType                    { return COLLISION_ENTER }
func (e CollisionEnterEvent) Pair() (actor.BodyID, actor.BodyID) { return e.BodyA, e.BodyB }

// CollisionStayEvent is sent on every following step the pair stays in contact
type CollisionStayEvent struct {
	BodyA actor.BodyID
	BodyB actor.BodyID
}

func (e CollisionStayEvent) Type() EventType                    { return COLLISION_STAY }
func (e CollisionStayEvent) Pair() (actor.BodyID, actor.BodyID) { return e.BodyA, e.BodyB }

// CollisionExitEvent is sent on the first step a pair is no longer in contact.
// Culled or removed bodies get no exit event.
type CollisionExitEvent struct {
	BodyA actor.BodyID
	BodyB actor.BodyID
}

func (e CollisionExitEvent) Type() EventType                    { return COLLISION_EXIT }
func (e CollisionExitEvent) Pair() (actor.BodyID, actor.BodyID) { return e.BodyA, e.BodyB }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.lazyInit()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// lazyInit makes the zero value usable, for worlds built without NewWorld
func (e *Events) lazyInit() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// recordCollisions marks the contacts of the current step as active
func (e *Events) recordCollisions(contacts []Contact) {
	e.lazyInit()
	for _, c := range contacts {
		e.currentActivePairs[makePairKey(c.BodyA, c.BodyB)] = true
	}
}

// forget drops every pair involving the body, without an exit event
func (e *Events) forget(id actor.BodyID) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == id || pair.bodyB == id {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == id || pair.bodyB == id {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.lazyInit()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
