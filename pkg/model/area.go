package model

// Area identifies a region whose crown can be contested. The values are
// fixed by the game client.
type Area int16

const (
	AreaTokyo Area = iota
	AreaHakone
	AreaNagoya
	AreaOsaka
	AreaFukuoka
	AreaSubtokyo34
	AreaSubtokyo5
	AreaTurnpike
	AreaKobe
	AreaHiroshima
)

var areaNames = map[Area]string{
	AreaTokyo:      "tokyo",
	AreaHakone:     "hakone",
	AreaNagoya:     "nagoya",
	AreaOsaka:      "osaka",
	AreaFukuoka:    "fukuoka",
	AreaSubtokyo34: "subtokyo_3_4",
	AreaSubtokyo5:  "subtokyo_5",
	AreaTurnpike:   "turnpike",
	AreaKobe:       "kobe",
	AreaHiroshima:  "hiroshima",
}

func (a Area) String() string {
	if name, ok := areaNames[a]; ok {
		return name
	}
	return "unknown"
}

func (a Area) Valid() bool {
	_, ok := areaNames[a]
	return ok
}

// Areas returns all contestable areas in enumeration order.
func Areas() []Area {
	ret := make([]Area, 0, len(areaNames))
	for a := AreaTokyo; a <= AreaHiroshima; a++ {
		ret = append(ret, a)
	}
	return ret
}

// Course identifies a time attack course. The values are fixed by the
// game client.
type Course int16

const (
	CourseC1In Course = iota
	CourseC1Out
	CourseRingLeft
	CourseRingRight
	CourseSubtokyo34
	CourseSubtokyo5
	CourseWanganEast
	CourseWanganWest
	CourseK1Down
	CourseK1Up
	CourseYaesuIn
	CourseYaesuOut
	CourseYokohamaIn
	CourseYokohamaOut
	CourseNagoya
	CourseOsaka
	CourseKobe
	CourseFukuoka
	CourseHakoneFor
	CourseHakoneBack
	CourseTurnpikeUp
	CourseTurnpikeDown
	CourseTokyoAll
	CourseKanagawaAll
	CourseHiroshima
)
