package note

type Note struct {
	Id        uint64 `json:"id" example:"1"`
	Content   string `json:"content" example:"the sea was calm today"`
	Tag       string `json:"tag" example:"reflection"`
	Timestamp int64  `json:"timestamp" example:"1700000000000"`
}

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	EventCreate = "create"
	EventDelete = "delete"
)

type NewNote struct {
	Content   string `json:"content" example:"the sea was calm today"`
	Tag       string `json:"tag" example:"reflection"`
	Timestamp int64  `json:"timestamp,omitempty" example:"1700000000000"`
}

type Removal struct {
	Id uint64 `json:"id" example:"1"`
}
