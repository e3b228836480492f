package component

import "image/color"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// Text is a screen-space label such as the score readout.
type Text struct {
	Value string
	Scale float64
	Color color.Color
}

var TextComponent = NewComponent[Text]()

type ScoreTextTag struct{}

var ScoreTextTagComponent = NewComponent[ScoreTextTag]()
