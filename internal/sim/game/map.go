package game

// StarType classifies what sits at the center of a sector.
type StarType int

const (
	StarNone StarType = iota
	StarOrdinary
	StarNebula
	StarNeutron
	StarQuasar
	StarPulsar
	StarBlackHole
	StarWormhole
	StarRogue
)

// ResearchMultiplier is the study value of a stellar phenomenon for science
// ships.
func (t StarType) ResearchMultiplier() int {
	switch t {
	case StarOrdinary, StarNebula, StarNeutron, StarQuasar, StarPulsar:
		return 10
	case StarBlackHole:
		return 20
	case StarWormhole:
		return 30
	default:
		return 1
	}
}

// ScanInterference is the sensor penalty a phenomenon radiates into its own
// sector and (halved) into adjacent sectors.
func (t StarType) ScanInterference() int {
	switch t {
	case StarNebula:
		return -6
	case StarBlackHole, StarQuasar:
		return -8
	case StarPulsar:
		return -4
	default:
		return 0
	}
}

// Sector is one cell of the galaxy grid.
type Sector struct {
	Loc  Location
	Star StarType
}

func (s *Sector) HasStar() bool { return s.Star != StarNone }

// GalaxyMap is the fixed sector grid. Generation happens outside the engine;
// the engine only reads it.
type GalaxyMap struct {
	Width   int
	Height  int
	sectors []Sector
}

func NewGalaxyMap(width, height int) *GalaxyMap {
	m := &GalaxyMap{Width: width, Height: height, sectors: make([]Sector, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.sectors[y*width+x].Loc = Location{X: x, Y: y}
		}
	}
	return m
}

func (m *GalaxyMap) In(loc Location) bool {
	return loc.X >= 0 && loc.X < m.Width && loc.Y >= 0 && loc.Y < m.Height
}

func (m *GalaxyMap) Sector(loc Location) *Sector {
	if !m.In(loc) {
		return nil
	}
	return &m.sectors[loc.Y*m.Width+loc.X]
}

// SetStar places a phenomenon; used by scenario setup.
func (m *GalaxyMap) SetStar(loc Location, t StarType) {
	if s := m.Sector(loc); s != nil {
		s.Star = t
	}
}

// InterferenceGrid computes the shared per-cell sensor interference from
// every phenomenon on the map. The result is read-only across civilizations.
func (m *GalaxyMap) InterferenceGrid() []int {
	grid := make([]int, m.Width*m.Height)
	for i := range m.sectors {
		s := &m.sectors[i]
		base := s.Star.ScanInterference()
		if base == 0 {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				loc := Location{X: s.Loc.X + dx, Y: s.Loc.Y + dy}
				if !m.In(loc) {
					continue
				}
				v := base
				if dx != 0 || dy != 0 {
					v = base / 2
				}
				grid[loc.Y*m.Width+loc.X] += v
			}
		}
	}
	return grid
}
