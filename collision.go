package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SeparationAxis is used when two circle centers coincide and no normal can be derived
var SeparationAxis = mgl64.Vec2{1, 0}

// DetectCollisions visits every pair (i, j), i < j, in index order and resolves it in place.
// Position corrections are applied as pairs are visited, so a body in several contacts
// sees the corrections of the earlier pairs. Contacts are appended to dst.
func DetectCollisions(bodies []*actor.Body, gravity mgl64.Vec2, dst []Contact) []Contact {
	for _, body := range bodies {
		body.Collided = false
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bodyA := bodies[i]
			bodyB := bodies[j]

			if collide(bodyA, bodyB, gravity) {
				bodyA.Collided = true
				bodyB.Collided = true
				dst = append(dst, Contact{BodyA: bodyA.ID, BodyB: bodyB.ID})
			}
		}
	}

	return dst
}

// collide dispatches a pair to the resolver of its shape combination
func collide(bodyA, bodyB *actor.Body, gravity mgl64.Vec2) bool {
	switch bodyA.Shape.(type) {
	case *actor.Circle:
		switch bodyB.Shape.(type) {
		case *actor.Circle:
			return ResolveCircleCircle(bodyA, bodyB)
		case *actor.Halfspace:
			return ResolveCircleHalfspace(bodyA, bodyB, gravity)
		}
	case *actor.Halfspace:
		switch bodyB.Shape.(type) {
		case *actor.Circle:
			return ResolveCircleHalfspace(bodyB, bodyA, gravity)
		case *actor.Halfspace:
			// planes do not interact
			return false
		}
	}

	return false
}

// ResolveCircleCircle separates two overlapping circles along the line between their centers.
// Two dynamic circles move by half the MTV each; a static circle does not move and the
// other one takes the whole MTV. There is no velocity change.
func ResolveCircleCircle(bodyA, bodyB *actor.Body) bool {
	circleA, okA := bodyA.Shape.(*actor.Circle)
	circleB, okB := bodyB.Shape.(*actor.Circle)
	if !okA || !okB {
		return false
	}

	displacement := bodyB.Position.Sub(bodyA.Position)
	distance := displacement.Len()
	sumOfRadii := circleA.Radius + circleB.Radius
	overlap := sumOfRadii - distance

	if overlap <= 0 {
		return false
	}

	var normal mgl64.Vec2
	if distance == 0 {
		normal = SeparationAxis
		overlap = sumOfRadii
	} else {
		normal = displacement.Mul(1.0 / distance)
	}
	mtv := normal.Mul(overlap)

	switch {
	case bodyA.IsStatic() && bodyB.IsStatic():
	case bodyA.IsStatic():
		bodyB.Position = bodyB.Position.Add(mtv)
	case bodyB.IsStatic():
		bodyA.Position = bodyA.Position.Sub(mtv)
	default:
		bodyA.Position = bodyA.Position.Sub(mtv.Mul(0.5))
		bodyB.Position = bodyB.Position.Add(mtv.Mul(0.5))
	}

	return true
}

// ResolveCircleHalfspace pushes a circle out of a plane along the plane normal and removes
// the velocity component heading into the plane. It then adds
// a normal force cancelling the part of gravity pressing into the plane, and a friction
// force opposing the tangential part of gravity.
//
// Friction magnitude is min(|Fnormal| * gripC * gripH, |FgPara|) so it can stop a slide
// but never reverse it.
func ResolveCircleHalfspace(circleBody, halfspaceBody *actor.Body, gravity mgl64.Vec2) bool {
	circle, okC := circleBody.Shape.(*actor.Circle)
	halfspace, okH := halfspaceBody.Shape.(*actor.Halfspace)
	if !okC || !okH {
		return false
	}

	normal := halfspace.Normal()
	signedDistance := circleBody.Position.Sub(halfspaceBody.Position).Dot(normal)
	overlap := circle.Radius - signedDistance

	if overlap <= 0 {
		return false
	}
	if circleBody.IsStatic() {
		return true
	}

	circleBody.Position = circleBody.Position.Add(normal.Mul(overlap))
	// inelastic contact: drop the velocity going into the plane
	if approach := circleBody.Velocity.Dot(normal); approach < 0 {
		circleBody.Velocity = circleBody.Velocity.Sub(normal.Mul(approach))
	}

	fGravity := gravity.Mul(circleBody.Material.GetMass())
	fGravityPerp := normal.Mul(fGravity.Dot(normal))
	fNormal := fGravityPerp.Mul(-1)
	circleBody.AddForce(fNormal)

	circleBody.AddForce(FrictionForce(fGravity, fGravityPerp, circleBody.Material.Grip*halfspaceBody.Material.Grip))

	return true
}

// FrictionForce returns the friction opposing the tangential part of fGravity,
// clamped to the magnitude of that part
func FrictionForce(fGravity, fGravityPerp mgl64.Vec2, u float64) mgl64.Vec2 {
	fGravityPara := fGravity.Sub(fGravityPerp)
	maxFriction := fGravityPara.Len()
	if maxFriction == 0 {
		return mgl64.Vec2{}
	}

	frictionMagnitude := min(fGravityPerp.Len()*u, maxFriction)
	direction := fGravityPara.Mul(-1.0 / maxFriction)

	return direction.Mul(frictionMagnitude)
}
