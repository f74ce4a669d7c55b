package transport

type RegisterRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Skills   []string `json:"skills"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LocationPayload struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type TaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Budget      int              `json:"budget"`
	Urgency     string           `json:"urgency"`
	Location    *LocationPayload `json:"location"`
}

type ApplicationRequest struct {
	Message        string `json:"message"`
	ProposedBudget int    `json:"proposed_budget"`
}

type RatingRequest struct {
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}
