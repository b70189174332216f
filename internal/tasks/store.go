package tasks

import (
	"github.com/sandeepkv93/pomo/internal/model"
)

// Store holds the three ordered task sections. Duplicate texts are allowed
// and every index-addressed operation is a no-op when out of bounds.
type Store struct {
	sections [3][]model.Task
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) list(section model.Section) *[]model.Task {
	if !section.IsValid() {
		return nil
	}
	return &s.sections[section]
}

func (s *Store) inBounds(section model.Section, index int) bool {
	l := s.list(section)
	return l != nil && index >= 0 && index < len(*l)
}

// Add appends a new task to the section and returns it.
func (s *Store) Add(text string, section model.Section) model.Task {
	task := model.NewTask(text)
	s.append(section, task)
	return task
}

func (s *Store) append(section model.Section, task model.Task) {
	l := s.list(section)
	if l == nil {
		return
	}
	*l = append(*l, task)
}

func (s *Store) take(section model.Section, index int) (model.Task, bool) {
	if !s.inBounds(section, index) {
		return model.Task{}, false
	}
	l := s.list(section)
	task := (*l)[index]
	*l = append((*l)[:index], (*l)[index+1:]...)
	return task, true
}

func (s *Store) Delete(section model.Section, index int) {
	s.take(section, index)
}

func (s *Store) ReorderUp(section model.Section, index int) bool {
	if index <= 0 || !s.inBounds(section, index) {
		return false
	}
	l := *s.list(section)
	l[index-1], l[index] = l[index], l[index-1]
	return true
}

func (s *Store) ReorderDown(section model.Section, index int) bool {
	if !s.inBounds(section, index+1) || index < 0 {
		return false
	}
	l := *s.list(section)
	l[index], l[index+1] = l[index+1], l[index]
	return true
}

// Toggle moves a task between Backlog and Current. Completed tasks are left
// alone.
func (s *Store) Toggle(section model.Section, index int) bool {
	var dest model.Section
	switch section {
	case model.SectionBacklog:
		dest = model.SectionCurrent
	case model.SectionCurrent:
		dest = model.SectionBacklog
	default:
		return false
	}
	return s.move(section, index, dest)
}

// ToggleCompletion moves Current to Completed and Completed back to Backlog.
func (s *Store) ToggleCompletion(section model.Section, index int) bool {
	var dest model.Section
	switch section {
	case model.SectionCurrent:
		dest = model.SectionCompleted
	case model.SectionCompleted:
		dest = model.SectionBacklog
	default:
		return false
	}
	return s.move(section, index, dest)
}

func (s *Store) move(from model.Section, index int, to model.Section) bool {
	task, ok := s.take(from, index)
	if !ok {
		return false
	}
	s.append(to, task)
	return true
}

// CompleteActive moves the head of Current to Completed.
func (s *Store) CompleteActive() (model.Task, bool) {
	task, ok := s.take(model.SectionCurrent, 0)
	if !ok {
		return model.Task{}, false
	}
	s.append(model.SectionCompleted, task)
	return task, true
}

func (s *Store) ActiveTask() (model.Task, bool) {
	if s.Len(model.SectionCurrent) == 0 {
		return model.Task{}, false
	}
	return s.sections[model.SectionCurrent][0], true
}

func (s *Store) Rename(section model.Section, index int, text string) bool {
	if !s.inBounds(section, index) {
		return false
	}
	(*s.list(section))[index].Text = text
	return true
}

func (s *Store) Get(section model.Section, index int) (model.Task, bool) {
	if !s.inBounds(section, index) {
		return model.Task{}, false
	}
	return (*s.list(section))[index], true
}

func (s *Store) Tasks(section model.Section) []model.Task {
	l := s.list(section)
	if l == nil {
		return nil
	}
	out := make([]model.Task, len(*l))
	copy(out, *l)
	return out
}

func (s *Store) Len(section model.Section) int {
	l := s.list(section)
	if l == nil {
		return 0
	}
	return len(*l)
}

func (s *Store) Texts(section model.Section) []string {
	l := s.list(section)
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(*l))
	for _, task := range *l {
		out = append(out, task.Text)
	}
	return out
}

func (s *Store) ContainsText(section model.Section, text string) bool {
	l := s.list(section)
	if l == nil {
		return false
	}
	for _, task := range *l {
		if task.Text == text {
			return true
		}
	}
	return false
}

// RemoveText drops every task in the section whose text matches.
func (s *Store) RemoveText(section model.Section, text string) int {
	l := s.list(section)
	if l == nil {
		return 0
	}
	kept := (*l)[:0]
	removed := 0
	for _, task := range *l {
		if task.Text == text {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	*l = kept
	return removed
}
