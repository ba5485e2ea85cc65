package content

// Roadmap is the long-range product plan with its user journeys.
type Roadmap struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	DurationWeeks int        `json:"durationWeeks"`
	TeamSize      int        `json:"teamSize"`
	HoursPerPhase int        `json:"hoursPerPhase"`
	Phases        []Phase    `json:"phases"`
	UserFlows     []UserFlow `json:"userFlows"`
}

type Phase struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Weeks        string      `json:"weeks"`
	Status       PhaseStatus `json:"status"`
	Progress     int         `json:"progress"`
	Color        string      `json:"color"`
	Deliverables []string    `json:"deliverables"`
	Tasks        []string    `json:"tasks"`
}

type UserFlow struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	Steps       []UserFlowStep `json:"steps"`
}

type UserFlowStep struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// OverallProgress is the mean phase progress, rounded to one decimal.
func (r *Roadmap) OverallProgress() float64 {
	if len(r.Phases) == 0 {
		return 0
	}
	total := 0
	for _, phase := range r.Phases {
		total += phase.Progress
	}
	return round1(float64(total) / float64(len(r.Phases)))
}

func (r *Roadmap) CompletedPhases() int {
	count := 0
	for _, phase := range r.Phases {
		if phase.Status == StatusCompleted {
			count++
		}
	}
	return count
}

func (r *Roadmap) TotalHours() int {
	return len(r.Phases) * r.HoursPerPhase
}

func (r *Roadmap) CompletedHours() int {
	return r.CompletedPhases() * r.HoursPerPhase
}
