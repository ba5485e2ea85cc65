package content

import "math"

// DeveloperRoadmap is the short sprint plan broken into estimated tasks.
type DeveloperRoadmap struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	DurationWeeks int        `json:"durationWeeks"`
	Phases        []DevPhase `json:"phases"`
	Teams         []Team     `json:"teams"`
}

type DevPhase struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Week         int         `json:"week"`
	Status       PhaseStatus `json:"status"`
	Progress     int         `json:"progress"`
	Color        string      `json:"color"`
	Tasks        []DevTask   `json:"tasks"`
	Deliverables []string    `json:"deliverables"`
	Risks        []string    `json:"risks"`
}

type DevTask struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Status         PhaseStatus `json:"status"`
	Assignee       string      `json:"assignee"`
	EstimatedHours int         `json:"estimatedHours"`
	Priority       string      `json:"priority"`
	Dependencies   []string    `json:"dependencies"`
}

type Team struct {
	Name  string `json:"name"`
	Focus string `json:"focus"`
}

// OverallProgress is the mean phase progress rounded to a whole percent.
func (d *DeveloperRoadmap) OverallProgress() int {
	if len(d.Phases) == 0 {
		return 0
	}
	total := 0
	for _, phase := range d.Phases {
		total += phase.Progress
	}
	return int(math.Round(float64(total) / float64(len(d.Phases))))
}

func (d *DeveloperRoadmap) TotalTasks() int {
	count := 0
	for _, phase := range d.Phases {
		count += len(phase.Tasks)
	}
	return count
}

func (d *DeveloperRoadmap) TotalEstimatedHours() int {
	total := 0
	for _, phase := range d.Phases {
		total += phase.EstimatedHours()
	}
	return total
}

// CompletedHours sums the estimates of completed tasks.
func (d *DeveloperRoadmap) CompletedHours() int {
	total := 0
	for _, phase := range d.Phases {
		for _, task := range phase.Tasks {
			if task.Status == StatusCompleted {
				total += task.EstimatedHours
			}
		}
	}
	return total
}

// Weeks lists 1..DurationWeeks for the timeline header.
func (d *DeveloperRoadmap) Weeks() []int {
	weeks := make([]int, 0, d.DurationWeeks)
	for w := 1; w <= d.DurationWeeks; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

func (p DevPhase) EstimatedHours() int {
	total := 0
	for _, task := range p.Tasks {
		total += task.EstimatedHours
	}
	return total
}

// PriorityClass maps a task priority to its badge style.
func PriorityClass(priority string) string {
	switch priority {
	case "high":
		return "badge-red"
	case "medium":
		return "badge-yellow"
	}
	return "badge-gray"
}
