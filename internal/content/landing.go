package content

// Landing is the public marketing page.
type Landing struct {
	Brand        string               `json:"brand"`
	Hero         Hero                 `json:"hero"`
	Destinations Section              `json:"destinations"`
	Offers       []LandingDestination `json:"offers"`
	Services     Section              `json:"services"`
	ServiceList  []Service            `json:"serviceList"`
	Story        Story                `json:"story"`
	Stats        []Stat               `json:"stats"`
	Testimonials Section              `json:"testimonials"`
	Reviews      []Testimonial        `json:"reviews"`
	CallToAction Section              `json:"callToAction"`
	Contact      Contact              `json:"contact"`
}

type Hero struct {
	Badge     string `json:"badge"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
	Intro     string `json:"intro"`
}

type Section struct {
	Badge     string `json:"badge"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
	Intro     string `json:"intro"`
}

type LandingDestination struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Highlights  []string `json:"highlights"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Story struct {
	Badge      string   `json:"badge"`
	Title      string   `json:"title"`
	Highlight  string   `json:"highlight"`
	Paragraphs []string `json:"paragraphs"`
}

type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type Testimonial struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Image    string `json:"image"`
}

// Stars returns one entry per rating point for template ranges.
func (t Testimonial) Stars() []int {
	if t.Rating <= 0 {
		return nil
	}
	stars := make([]int, t.Rating)
	for i := range stars {
		stars[i] = i + 1
	}
	return stars
}

type Contact struct {
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
