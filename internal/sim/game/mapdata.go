package game

// Per-cell bit layout for CivilizationMapData. Everything a civilization
// knows about one sector packs into a single int32 for memory density.
const (
	fuelRangeMask    = 0x00FF // bits 0..7: distance to nearest fuel source
	scanStrengthMask = 0x3F00 // bits 8..13: scan strength, biased by +32
	scanStrengthOff  = 8
	exploredMask     = 1 << 14
	scannedMask      = 1 << 15

	scanStrengthBias = 32
	// MinScanStrength..MaxScanStrength is the representable signed range.
	MinScanStrength = -32
	MaxScanStrength = 31
	// MaxFuelRange marks "unreachable from any fuel source".
	MaxFuelRange = 255
)

// CivilizationMapData is one civilization's fog-of-war view of the galaxy:
// explored/scanned flags, signed scan strength and fuel range per sector.
type CivilizationMapData struct {
	width  int
	height int
	cells  []int32
}

func NewCivilizationMapData(width, height int) *CivilizationMapData {
	m := &CivilizationMapData{width: width, height: height, cells: make([]int32, width*height)}
	m.ResetScanStrengthAndFuelRange()
	return m
}

func (m *CivilizationMapData) Width() int  { return m.width }
func (m *CivilizationMapData) Height() int { return m.height }

func (m *CivilizationMapData) in(loc Location) bool {
	return loc.X >= 0 && loc.X < m.width && loc.Y >= 0 && loc.Y < m.height
}

func (m *CivilizationMapData) idx(loc Location) int { return loc.Y*m.width + loc.X }

// ResetScanStrengthAndFuelRange zeroes scan strength (stored biased) and
// marks every cell unreachable for fuel. Explored/scanned flags survive.
func (m *CivilizationMapData) ResetScanStrengthAndFuelRange() {
	for i, c := range m.cells {
		c &^= fuelRangeMask | scanStrengthMask
		c |= MaxFuelRange
		c |= scanStrengthBias << scanStrengthOff
		m.cells[i] = c
	}
}

func (m *CivilizationMapData) IsExplored(loc Location) bool {
	return m.in(loc) && m.cells[m.idx(loc)]&exploredMask != 0
}

func (m *CivilizationMapData) SetExplored(loc Location, explored bool) {
	if !m.in(loc) {
		return
	}
	if explored {
		m.cells[m.idx(loc)] |= exploredMask
	} else {
		m.cells[m.idx(loc)] &^= exploredMask
	}
}

func (m *CivilizationMapData) IsScanned(loc Location) bool {
	return m.in(loc) && m.cells[m.idx(loc)]&scannedMask != 0
}

// SetScanned marks a cell scanned; a scanned cell is always explored too.
func (m *CivilizationMapData) SetScanned(loc Location, scanned bool) {
	if !m.in(loc) {
		return
	}
	if scanned {
		m.cells[m.idx(loc)] |= scannedMask | exploredMask
	} else {
		m.cells[m.idx(loc)] &^= scannedMask
	}
}

func (m *CivilizationMapData) ScanStrength(loc Location) int {
	if !m.in(loc) {
		return 0
	}
	raw := int(m.cells[m.idx(loc)]&scanStrengthMask) >> scanStrengthOff
	return raw - scanStrengthBias
}

func (m *CivilizationMapData) SetScanStrength(loc Location, strength int) {
	if !m.in(loc) {
		return
	}
	if strength < MinScanStrength {
		strength = MinScanStrength
	}
	if strength > MaxScanStrength {
		strength = MaxScanStrength
	}
	i := m.idx(loc)
	c := m.cells[i] &^ scanStrengthMask
	c |= int32(strength+scanStrengthBias) << scanStrengthOff
	m.cells[i] = c
	if strength > 0 {
		m.cells[i] |= scannedMask | exploredMask
	}
}

// UpgradeScanStrength keeps the stronger of the current and offered values.
func (m *CivilizationMapData) UpgradeScanStrength(loc Location, strength int) {
	if !m.in(loc) {
		return
	}
	if strength > m.ScanStrength(loc) {
		m.SetScanStrength(loc, strength)
	}
}

// AdjustScanStrength applies a signed delta (sensor interference).
func (m *CivilizationMapData) AdjustScanStrength(loc Location, delta int) {
	if !m.in(loc) || delta == 0 {
		return
	}
	m.SetScanStrength(loc, m.ScanStrength(loc)+delta)
}

func (m *CivilizationMapData) FuelRange(loc Location) int {
	if !m.in(loc) {
		return MaxFuelRange
	}
	return int(m.cells[m.idx(loc)] & fuelRangeMask)
}

func (m *CivilizationMapData) SetFuelRange(loc Location, dist int) {
	if !m.in(loc) {
		return
	}
	if dist < 0 {
		dist = 0
	}
	if dist > MaxFuelRange {
		dist = MaxFuelRange
	}
	i := m.idx(loc)
	m.cells[i] = m.cells[i]&^fuelRangeMask | int32(dist)
}

// UpgradeFuelRange keeps the smaller of the current and offered distances:
// the cell tracks the distance to the NEAREST fuel source.
func (m *CivilizationMapData) UpgradeFuelRange(loc Location, dist int) {
	if !m.in(loc) {
		return
	}
	if dist < m.FuelRange(loc) {
		m.SetFuelRange(loc, dist)
	}
}

// ApplyScanInterference adds the shared interference grid to this
// civilization's scan strengths. The grid is read-only here.
func (m *CivilizationMapData) ApplyScanInterference(grid []int, width int) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			i := y*width + x
			if i >= len(grid) || grid[i] == 0 {
				continue
			}
			m.AdjustScanStrength(Location{X: x, Y: y}, grid[i])
		}
	}
}
