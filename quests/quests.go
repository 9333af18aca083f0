// quests/quests.go - Daily quest rotation and progress evaluation
package quests

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

type Type string

const (
	TypeCount    Type = "count"
	TypeCategory Type = "category"
	TypeAny      Type = "any"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DailyCount is how many quests are offered each day.
const DailyCount = 3

// Requirement is a target count with optional type and action filters.
type Requirement struct {
	Target   int    `json:"target"`
	Category string `json:"category,omitempty"`
	Action   string `json:"action,omitempty"`
}

// Quest is a template from the pool. Daily instances are derived, never stored.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Type        Type        `json:"type"`
	Requirement Requirement `json:"requirement"`
	Reward      int         `json:"reward"`
	Difficulty  Difficulty  `json:"difficulty"`
}

// ActivityRef is the part of a logged activity quests look at.
type ActivityRef struct {
	Type   string
	Action string
}

// Progress is a quest's state against one day of activities.
type Progress struct {
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
	Matching  int     `json:"matching"`
}

// Pool is an immutable set of quest templates.
type Pool struct {
	templates []Quest
	byID      map[string]Quest
}

// NewPool validates the templates and returns a pool.
func NewPool(templates []Quest) (*Pool, error) {
	p := &Pool{
		templates: make([]Quest, len(templates)),
		byID:      make(map[string]Quest, len(templates)),
	}
	copy(p.templates, templates)
	for _, q := range templates {
		if q.ID == "" {
			return nil, errors.New("quest with empty id")
		}
		if _, dup := p.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quest id %q", q.ID)
		}
		switch q.Type {
		case TypeCount, TypeCategory, TypeAny:
		default:
			return nil, fmt.Errorf("quest %q: unknown type %q", q.ID, q.Type)
		}
		if q.Reward < 0 {
			return nil, fmt.Errorf("quest %q: negative reward", q.ID)
		}
		p.byID[q.ID] = q
	}
	return p, nil
}

// MustNewPool panics on an invalid table.
func MustNewPool(templates []Quest) *Pool {
	p, err := NewPool(templates)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns a template by id.
func (p *Pool) Lookup(id string) (Quest, bool) {
	q, ok := p.byID[id]
	return q, ok
}

// rotationHash keys on the first UTF-16 code unit of the id so rotations
// match clients computing it in JavaScript.
func rotationHash(dayOfYear int, id string) int {
	r, _ := utf8.DecodeRuneInString(id)
	return (dayOfYear*31 + int(utf16.Encode([]rune{r})[0])) % 100
}

// ForDayOfYear selects the day's quests: templates are ordered by a hash of
// the day and their id, then the first easy, the first medium and the first
// remaining template are taken. Fewer are returned when the pool is small.
func (p *Pool) ForDayOfYear(dayOfYear int) []Quest {
	ordered := make([]Quest, len(p.templates))
	copy(ordered, p.templates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rotationHash(dayOfYear, ordered[i].ID) < rotationHash(dayOfYear, ordered[j].ID)
	})

	picked := make(map[string]bool, DailyCount)
	out := make([]Quest, 0, DailyCount)
	take := func(match func(Quest) bool) {
		for _, q := range ordered {
			if !picked[q.ID] && match(q) {
				picked[q.ID] = true
				out = append(out, q)
				return
			}
		}
	}

	take(func(q Quest) bool { return q.Difficulty == Easy })
	take(func(q Quest) bool { return q.Difficulty == Medium })
	take(func(Quest) bool { return true })

	return out
}

// ForDay returns the quests for the calendar day containing t in loc.
func (p *Pool) ForDay(t time.Time, loc *time.Location) []Quest {
	if loc == nil {
		loc = time.UTC
	}
	return p.ForDayOfYear(t.In(loc).YearDay())
}

// Contains reports whether id is among the quests offered on the given day.
func (p *Pool) Contains(t time.Time, loc *time.Location, id string) (Quest, bool) {
	for _, q := range p.ForDay(t, loc) {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

func (r Requirement) matches(a ActivityRef) bool {
	if r.Category != "" && !strings.EqualFold(a.Type, r.Category) {
		return false
	}
	if r.Action != "" && !strings.Contains(strings.ToLower(a.Action), strings.ToLower(r.Action)) {
		return false
	}
	return true
}

// CheckProgress evaluates q against the activities of a single day.
func CheckProgress(q Quest, activities []ActivityRef) Progress {
	matching := 0
	switch q.Type {
	case TypeCategory:
		for _, a := range activities {
			if q.Requirement.matches(a) {
				matching++
			}
		}
	default:
		matching = len(activities)
	}

	target := q.Requirement.Target
	if target <= 0 {
		return Progress{Completed: true, Progress: 100, Matching: matching}
	}
	pct := 100 * float64(matching) / float64(target)
	if pct > 100 {
		pct = 100
	}
	return Progress{
		Completed: matching >= target,
		Progress:  pct,
		Matching:  matching,
	}
}
