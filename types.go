package resume2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Skill level bounds.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// PersonalInfo holds the header fields of a resume. All fields are optional;
// Photo is a data-URL or regular URL reference to a portrait image.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
	Photo    string `json:"photo"`
}

// Experience is one work history entry. Achievements keep their input order;
// blank entries are filtered at render time, not on input.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is one education history entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill is a named skill with a proficiency level in [1,5].
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Reference is one professional reference entry.
type Reference struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ResumeDocument is the canonical structured representation of a resume.
// Sequences are display-ordered. Entries are replaced by swapping the whole
// containing slice; the document has a single logical owner at a time.
type ResumeDocument struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	References   []Reference  `json:"references"`
}

// NewResumeDocument returns a fresh document seeded with exactly one
// placeholder entry per section, matching the shape an editing session
// starts from. Placeholder ids are unique and never reused.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Experiences: []Experience{{ID: NewEntryID(), Achievements: []string{""}}},
		Education:   []Education{{ID: NewEntryID()}},
		Skills:      []Skill{{ID: NewEntryID(), Level: 3}},
		References:  []Reference{{ID: NewEntryID()}},
	}
}

// NewEntryID returns a stable opaque identifier for a new section entry.
func NewEntryID() string {
	return uuid.NewString()
}

// Validate checks the document invariants: every entry has a non-empty id,
// ids are unique within their sequence, and skill levels are in bounds.
func (d *ResumeDocument) Validate() error {
	seen := make(map[string]struct{})

	checkID := func(section, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s entry", ErrEmptyEntryID, section)
		}
		key := section + "/" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s entry %q", ErrDuplicateEntryID, section, id)
		}
		seen[key] = struct{}{}
		return nil
	}

	for _, e := range d.Experiences {
		if err := checkID("experience", e.ID); err != nil {
			return err
		}
	}
	for _, e := range d.Education {
		if err := checkID("education", e.ID); err != nil {
			return err
		}
	}
	for _, s := range d.Skills {
		if err := checkID("skill", s.ID); err != nil {
			return err
		}
		if s.Level < MinSkillLevel || s.Level > MaxSkillLevel {
			return fmt.Errorf("%w: %q has level %d", ErrInvalidSkillLevel, s.Name, s.Level)
		}
	}
	for _, r := range d.References {
		if err := checkID("reference", r.ID); err != nil {
			return err
		}
	}
	return nil
}

// ClampSkillLevel forces a level into the valid [1,5] range.
func ClampSkillLevel(level int) int {
	if level < MinSkillLevel {
		return MinSkillLevel
	}
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// Input contains render parameters. Exactly one of Document or HTML must be
// set: Document selects the structured synthesis path, HTML the snapshot
// path (CSS is only meaningful alongside HTML).
type Input struct {
	Document *ResumeDocument // structured path
	Theme    string          // theme selector, unknown falls back to default
	Language string          // "en" or "fr", unknown falls back to default

	HTML string // snapshot path: pre-rendered preview markup
	CSS  string // snapshot path: captured stylesheet text

	Filename string // optional; derived from the document name when empty
}

// hasContent reports whether the input carries something renderable.
func (in Input) hasContent() bool {
	return in.Document != nil || strings.TrimSpace(in.HTML) != ""
}

// Artifact is a rendered PDF held in memory with a suggested filename.
type Artifact struct {
	PDF      []byte
	Filename string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	settle  time.Duration
	browser BrowserConfig
}

// Defaults used when no option overrides them.
const (
	defaultTimeout = 30 * time.Second

	// defaultSettleDelay lets asynchronous layout and font effects resolve
	// before the raster fallback captures the staged page.
	defaultSettleDelay = time.Second
)

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resume2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithSettleDelay sets the raster fallback settling delay.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("resume2pdf: WithSettleDelay duration must not be negative")
	}
	return func(s *Service) {
		s.cfg.settle = d
	}
}

// WithBrowserConfig injects an explicit browser resolution config instead of
// the environment-detected one. Keeps backend selection testable and free of
// ambient environment inspection inside the renderers.
func WithBrowserConfig(cfg BrowserConfig) Option {
	return func(s *Service) {
		s.cfg.browser = cfg
	}
}
