package dat

// Alphabet maps BMP code points (0..65535) to dense symbol IDs [1..Size].
// It's a two-level page table:
//   - top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - pages is a flat array of NumPages*256 entries.
//
// Stroke codes use a tiny alphabet (six glyphs spread over three Unicode
// blocks), so typically three pages are populated, about 2 KB overall.
type Alphabet struct {
	top   [256]uint16 // page index (1-based); 0 means none
	pages []uint16    // flat: NumPages*256
	size  uint16
}

// Dense returns the dense ID of r, or 0 if r is not part of the alphabet.
func (a *Alphabet) Dense(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	bmp := uint16(r)
	pi := a.top[bmp>>8]
	if pi == 0 {
		return 0
	}
	base := int(pi-1) << 8 // *256
	return a.pages[base+int(bmp&0xFF)]
}

// Add returns the dense ID of r, assigning the next free one if r is new.
// It fails for code points outside the BMP and when the alphabet is full.
func (a *Alphabet) Add(r rune) (uint16, bool) {
	if r < 0 || r > 0xFFFF {
		return 0, false
	}
	if d := a.Dense(r); d != 0 {
		return d, true
	}
	if a.size == ^uint16(0) {
		return 0, false
	}
	a.size++
	bmp := uint16(r)
	pi := a.ensurePage(bmp >> 8)
	a.pages[int(pi-1)<<8+int(bmp&0xFF)] = a.size
	return a.size, true
}

// Size is the number of symbols, i.e. the largest dense ID.
func (a *Alphabet) Size() uint16 { return a.size }

// NumPages returns the number of allocated pages.
func (a *Alphabet) NumPages() int { return len(a.pages) >> 8 }

func (a *Alphabet) ensurePage(hi uint16) uint16 {
	if pi := a.top[hi]; pi != 0 {
		return pi
	}
	a.pages = append(a.pages, make([]uint16, 256)...)
	pi := uint16(len(a.pages) >> 8) // number of pages, 1-based index
	a.top[hi] = pi
	return pi
}
