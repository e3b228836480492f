package component

// Hazard marks a bomb. Index points into the session's hazard list.
type Hazard struct {
	Index int
}

var HazardComponent = NewComponent[Hazard]()

// Collectible marks a star. Index points into the session's collectible set.
type Collectible struct {
	Index int
}

var CollectibleComponent = NewComponent[Collectible]()
