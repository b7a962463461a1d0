package dto

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Avg      int    `json:"avg"`
	Attempts int    `json:"attempts"`
}

type LeaderboardResponse struct {
	Company     string             `json:"company,omitempty"`
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}

type CompanyAnalytics struct {
	Company  string `json:"company"`
	Avg      int    `json:"avg"`
	Attempts int    `json:"attempts"`
}
