package guard

// Region is the painted guard region [Base - Words*WordSize, Base).
type Region struct {
	Base     uintptr
	Words    int
	Sentinel uint32
}

// Bottom returns the lowest address in the region.
func (r Region) Bottom() uintptr {
	return r.Base - uintptr(r.Words)*WordSize
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.Bottom() && addr < r.Base
}

// Report is the result of scanning a region.
type Report struct {
	// Headroom is the number of consecutive sentinel words counted upward
	// from the bottom of the region.
	Headroom int
	// Used is the number of words above the intact run, i.e. the deepest
	// stack growth into the region seen so far.
	Used int
	// Overflowed is set when the lowest word no longer holds the sentinel.
	Overflowed bool
}

// Scan reads the region from the bottom up. It never writes memory and does
// not act on what it finds.
func (r Region) Scan(m Memory) Report {
	var report Report
	addr := r.Bottom()
	for report.Headroom < r.Words && m.LoadWord(addr) == r.Sentinel {
		report.Headroom++
		addr += WordSize
	}
	report.Used = r.Words - report.Headroom
	report.Overflowed = r.Words > 0 && report.Headroom == 0
	return report
}
