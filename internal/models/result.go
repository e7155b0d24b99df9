package models

type GenerateMatchesRequest struct {
	Mentors             []Person `json:"mentors"`
	Mentees             []Person `json:"mentees"`
	MaxMenteesPerMentor int      `json:"maxMenteesPerMentor"`
	SaveToDatabase      *bool    `json:"saveToDatabase"`
}

type GenerateMatchesResponse struct {
	Message         string   `json:"message"`
	Matches         []Match  `json:"matches"`
	StoredMatchIDs  []string `json:"stored_match_ids"`
	SavedToDatabase bool     `json:"saved_to_database"`
	IsMockData      bool     `json:"is_mock_data,omitempty"`
}

type UpdateMatchStatusRequest struct {
	MatchID string `json:"matchId"`
	Status  string `json:"status"`
	UserID  string `json:"userId"`
}

type DeleteMatchRequest struct {
	MatchID string `json:"matchId"`
}

type SignupStatusRequest struct {
	UserID string `json:"userId"`
}

type SignupStatusResponse struct {
	Exists bool    `json:"exists"`
	Role   *string `json:"role"`
	Mock   bool    `json:"mock,omitempty"`
}
