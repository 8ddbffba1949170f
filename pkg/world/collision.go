package world

// Rect is an axis-aligned box with its origin at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func Intersects(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Collides reports whether the vehicle overlaps the obstacle
func Collides(v Vehicle, o Obstacle) bool {
	return Intersects(v.Bounds(), o.Bounds())
}

// firstHit returns the index of the first obstacle hitting the vehicle, or -1
func firstHit(v Vehicle, obstacles []Obstacle) int {
	for i := range obstacles {
		if Collides(v, obstacles[i]) {
			return i
		}
	}
	return -1
}
