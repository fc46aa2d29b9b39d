package domain

// Region is a NALD region; legacy requirement references are numbered per region.
type Region struct {
	ID           string
	Name         string
	NALDRegionID int
}

// Purpose is an abstraction purpose a requirement can cover.
type Purpose struct {
	ID          string
	Description string
}

// Point is an abstraction point described by up to four national grid
// references. NGR1 is always present; NGR2 marks a reach, NGR4 an area.
type Point struct {
	ID          string
	Description string
	NGR1        string
	NGR2        string
	NGR3        string
	NGR4        string
}
