// Package focus tracks the selected row of the task panel.
package focus

import (
	"github.com/sandeepkv93/pomo/internal/model"
)

// Lengths reports how many tasks a section holds.
type Lengths interface {
	Len(section model.Section) int
}

// Focus is a section plus a row index. After Clamp the index is below the
// section length, or 0 when the section is empty.
type Focus struct {
	Section model.Section
	Index   int
}

func (f *Focus) Up() {
	if f.Index > 0 {
		f.Index--
	}
}

func (f *Focus) Down(l Lengths) {
	if n := l.Len(f.Section); f.Index+1 < n {
		f.Index++
	}
}

func (f *Focus) PageUp(page int) {
	if page < 1 {
		page = 1
	}
	f.Index -= page
	if f.Index < 0 {
		f.Index = 0
	}
}

func (f *Focus) PageDown(l Lengths, page int) {
	if page < 1 {
		page = 1
	}
	f.Index += page
	f.Clamp(l)
}

func (f *Focus) NextSection(l Lengths) {
	f.Section = f.Section.Next()
	f.Clamp(l)
}

func (f *Focus) PrevSection(l Lengths) {
	f.Section = f.Section.Prev()
	f.Clamp(l)
}

func (f *Focus) Set(l Lengths, section model.Section, index int) {
	if !section.IsValid() {
		section = model.SectionBacklog
	}
	f.Section = section
	f.Index = index
	f.Clamp(l)
}

func (f *Focus) Clamp(l Lengths) {
	if !f.Section.IsValid() {
		f.Section = model.SectionBacklog
	}
	n := l.Len(f.Section)
	switch {
	case n == 0 || f.Index < 0:
		f.Index = 0
	case f.Index >= n:
		f.Index = n - 1
	}
}
