package models

type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
